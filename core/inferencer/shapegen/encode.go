package shapegen

import "math/big"

// Encode renders the standard ABI head/tail encoding for a top-level
// argument list, exactly mirroring what a real compiler would emit for
// a function taking params of this shape. It exists purely to produce
// test fixtures; decoding goes through pkg/oracle (go-ethereum), never
// through this encoder.
func Encode(params []Node) []byte {
	return encodeTuple(params)
}

func isDynamic(n Node) bool {
	switch n.Kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindTuple:
		for _, c := range n.Tuple {
			if isDynamic(c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func encodeTuple(items []Node) []byte {
	heads := make([][]byte, len(items))
	tails := make([][]byte, len(items))
	for i, it := range items {
		if isDynamic(it) {
			tails[i] = encodeDynamic(it)
		} else {
			heads[i] = encodeStatic(it)
		}
	}

	headLen := len(items) * 32
	offset := headLen
	out := make([]byte, 0, headLen+totalLen(tails))
	resolved := make([][]byte, len(items))
	for i := range items {
		if heads[i] != nil {
			resolved[i] = heads[i]
		} else {
			resolved[i] = encodeUint(big.NewInt(int64(offset)))
			offset += len(tails[i])
		}
	}
	for _, h := range resolved {
		out = append(out, h...)
	}
	for _, t := range tails {
		out = append(out, t...)
	}
	return out
}

func totalLen(chunks [][]byte) int {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	return n
}

func encodeStatic(n Node) []byte {
	switch n.Kind {
	case KindUint256:
		return encodeUint(n.U)
	case KindBytes32:
		b := make([]byte, 32)
		copy(b, n.B32[:])
		return b
	case KindTuple:
		var out []byte
		for _, c := range n.Tuple {
			out = append(out, encodeStatic(c)...)
		}
		return out
	}
	return make([]byte, 32)
}

func encodeDynamic(n Node) []byte {
	switch n.Kind {
	case KindBytes:
		return encodeBytesLike(n.Blob)
	case KindString:
		return encodeBytesLike([]byte(n.Str))
	case KindTuple:
		return encodeTuple(n.Tuple)
	case KindArray:
		lengthWord := encodeUint(big.NewInt(int64(len(n.Array))))
		return append(lengthWord, encodeTuple(n.Array)...)
	}
	return nil
}

func encodeBytesLike(b []byte) []byte {
	length := encodeUint(big.NewInt(int64(len(b))))
	padded := make([]byte, ((len(b)+31)/32)*32)
	copy(padded, b)
	return append(length, padded...)
}

func encodeUint(v *big.Int) []byte {
	out := make([]byte, 32)
	b := v.Bytes()
	copy(out[32-len(b):], b)
	return out
}
