package calldata

// ProbeOffset reports whether the word at pos plausibly encodes an
// offset into buf: its value must be safe, strictly greater than pos
// (rejecting self-referential and backward pointers — dynamic tails
// always follow the static head), strictly less than the buffer
// length, and a multiple of 32.
func (b Buffer) ProbeOffset(pos int) (int, bool) {
	word, ok := b.ReadWord(pos)
	if !ok || !IsSafe(word) {
		return 0, false
	}
	n := int(word.Int64())
	if n <= pos || n >= b.Len() || n%32 != 0 {
		return 0, false
	}
	return n, true
}

// ProbeLength reports whether the word at off plausibly encodes a
// length prefix: its value must be safe and off+32+k must not exceed
// the buffer length. No alignment check — an element count or byte
// count need not be a multiple of 32.
func (b Buffer) ProbeLength(off int) (int, bool) {
	word, ok := b.ReadWord(off)
	if !ok || !IsSafe(word) {
		return 0, false
	}
	k := int(word.Int64())
	if k < 0 || off+32+k > b.Len() {
		return 0, false
	}
	return k, true
}
