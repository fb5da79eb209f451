package inferencer

import (
	"github.com/samber/lo"

	"github.com/openabi/calldata-guesser/pkg/calldata"
	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/oracle"
)

// resolveTail resolves every placeholder in acc against buf once the
// head is complete, submits the completed candidate to the oracle, and
// emits it only on acceptance.
func resolveTail(buf calldata.Buffer, acc []classifiedSlot, dec oracle.Decoder, tr Tracer) ([]fragment.Param, bool) {
	params := make([]fragment.Param, len(acc))
	var idxs []int
	for i, s := range acc {
		if s.static {
			params[i] = fragment.Bytes32()
		} else {
			idxs = append(idxs, i)
		}
	}

	for pi, idx := range idxs {
		s := acc[idx]
		start := s.offset
		if s.hasLength {
			start += 32
		}
		end := buf.Len()
		trailing := pi+1 >= len(idxs)
		if !trailing {
			end = acc[idxs[pi+1]].offset
		}
		tail := buf.Slice(start, end)

		p, ok := resolvePlaceholder(s, tail, trailing, dec, tr)
		if !ok {
			trace(tr, "placeholder at offset %d: tail resolution failed", s.offset)
			return nil, false
		}
		params[idx] = p
	}

	frag := &fragment.Fragment{Inputs: params}
	if err := dec.TryDecode(frag.Types(), buf.Bytes()); err != nil {
		trace(tr, "oracle rejected candidate %s: %v", frag.Signature(), err)
		return nil, false
	}
	trace(tr, "oracle accepted candidate %s", frag.Signature())
	return params, true
}

// resolvePlaceholder disambiguates the dynamic tail of a single
// placeholder between a tuple, a byte blob, and the array shapes.
func resolvePlaceholder(s classifiedSlot, tail []byte, trailing bool, dec oracle.Decoder, tr Tracer) (fragment.Param, bool) {
	if !s.hasLength {
		inner, ok := classify(calldata.NewBuffer(tail), 0, nil, len(tail), nil, dec, tr)
		if !ok {
			return fragment.Param{}, false
		}
		return fragment.Tuple(inner...), true
	}

	k := s.length
	if isBytesLike(k, tail, trailing) {
		return fragment.Bytes(), true
	}

	if elem, ok := resolveDynamicElementArray(k, tail, dec, tr); ok {
		return fragment.Array(elem), true
	}

	if elem, ok := resolveStaticElementArray(k, tail, trailing, dec, tr); ok {
		return fragment.Array(elem), true
	}

	if elem, ok := resolveChunkedTupleArray(k, tail, dec, tr); ok {
		return fragment.Array(elem), true
	}

	return fragment.Param{}, false
}

// isBytesLike reports whether a dynamic tail looks like a right-padded
// byte blob rather than an array or nested tuple.
func isBytesLike(k int, tail []byte, trailing bool) bool {
	if k == 0 && len(tail) == 0 {
		return true
	}
	if k%32 == 0 {
		return trailing || k == len(tail)
	}
	wordStart := (k / 32) * 32
	padStart := k
	padEnd := wordStart + 32
	if padEnd > len(tail) {
		return false
	}
	for _, b := range tail[padStart:padEnd] {
		if b != 0 {
			return false
		}
	}
	return true
}

// resolveDynamicElementArray implements the "Dynamic-element array"
// branch: tail looks like a tuple of k dynamic placeholders.
func resolveDynamicElementArray(k int, tail []byte, dec oracle.Decoder, tr Tracer) (fragment.Param, bool) {
	if len(tail)/32 <= k {
		return fragment.Param{}, false
	}
	tb := calldata.NewBuffer(tail)
	for i := 0; i < k; i++ {
		if _, ok := tb.ProbeOffset(i * 32); !ok {
			return fragment.Param{}, false
		}
	}

	assumeRes, assumeOK := tryMode(tb, true, k, dec, tr)
	noAssumeRes, noAssumeOK := tryMode(tb, false, k, dec, tr)

	if assumeOK {
		return assumeRes, true
	}
	if noAssumeOK {
		return noAssumeRes, true
	}
	return fragment.Param{}, false
}

func tryMode(tb calldata.Buffer, assumeLength bool, k int, dec oracle.Decoder, tr Tracer) (fragment.Param, bool) {
	res, ok := classify(tb, 0, nil, tb.Len(), &modeConstraint{assumeLength: assumeLength}, dec, tr)
	if !ok || len(res) != k {
		return fragment.Param{}, false
	}
	if !uniform(res) {
		return fragment.Param{}, false
	}
	return res[0], true
}

// resolveStaticElementArray implements the "Static-element array"
// branch: the k elements are packed statically, element_words words
// each.
func resolveStaticElementArray(k int, tail []byte, trailing bool, dec oracle.Decoder, tr Tracer) (fragment.Param, bool) {
	if k == 0 {
		return fragment.Param{}, false
	}
	totalWords := len(tail) / 32
	if len(tail)%32 != 0 {
		return fragment.Param{}, false
	}
	elementWords := totalWords / k
	if elementWords == 0 {
		return fragment.Param{}, false
	}
	remainder := totalWords % k
	usable := tail
	if remainder != 0 {
		if !trailing {
			return fragment.Param{}, false
		}
		usable = tail[:elementWords*k*32]
	}

	elems := make([]fragment.Param, 0, k)
	for i := 0; i < k; i++ {
		chunk := usable[i*elementWords*32 : (i+1)*elementWords*32]
		inner, ok := classify(calldata.NewBuffer(chunk), 0, nil, len(chunk), nil, dec, tr)
		if !ok {
			return fragment.Param{}, false
		}
		elems = append(elems, collapseTuple(inner))
	}
	if !lo.EveryBy(elems[1:], func(p fragment.Param) bool { return p.Equal(elems[0]) }) {
		return fragment.Param{}, false
	}
	return elems[0], true
}

// resolveChunkedTupleArray implements the final "if none apply"
// fallback: decode tail as one tuple, then chunk its resolved
// parameter list into k equal groups.
func resolveChunkedTupleArray(k int, tail []byte, dec oracle.Decoder, tr Tracer) (fragment.Param, bool) {
	if k == 0 {
		return fragment.Param{}, false
	}
	whole, ok := classify(calldata.NewBuffer(tail), 0, nil, len(tail), nil, dec, tr)
	if !ok || len(whole) == 0 || len(whole)%k != 0 {
		return fragment.Param{}, false
	}
	groupSize := len(whole) / k
	groups := make([]fragment.Param, 0, k)
	for i := 0; i < k; i++ {
		group := whole[i*groupSize : (i+1)*groupSize]
		groups = append(groups, collapseTuple(group))
	}
	if !lo.EveryBy(groups[1:], func(p fragment.Param) bool { return p.Equal(groups[0]) }) {
		return fragment.Param{}, false
	}
	return groups[0], true
}

// collapseTuple implements "collapsing to its sole inner type when
// length 1, except preserving bytes as-is.
func collapseTuple(params []fragment.Param) fragment.Param {
	if len(params) == 1 && params[0].Kind != fragment.KindBytes {
		return params[0]
	}
	return fragment.Tuple(params...)
}

// uniform reports whether every resolved parameter has the same
// formatted (canonical) type, per the "element-type set" rejection
// rule used to reject candidates with mixed element shapes.
func uniform(params []fragment.Param) bool {
	if len(params) == 0 {
		return true
	}
	return lo.EveryBy(params[1:], func(p fragment.Param) bool { return p.Equal(params[0]) })
}
