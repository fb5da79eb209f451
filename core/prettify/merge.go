package prettify

import "github.com/openabi/calldata-guesser/pkg/fragment"

// Merge reconciles two candidate types with the same structure: equal
// types merge to themselves, tuples merge component-wise, arrays merge
// on element type, string/bytes disagreement collapses to bytes,
// uint256/scalar disagreement collapses to uint256, and any other
// scalar disagreement collapses to bytes32.
func Merge(a, b fragment.Param) fragment.Param {
	if a.Equal(b) {
		return a
	}
	if a.Kind == fragment.KindTuple && b.Kind == fragment.KindTuple && len(a.Tuple) == len(b.Tuple) {
		merged := make([]fragment.Param, len(a.Tuple))
		for i := range a.Tuple {
			merged[i] = Merge(a.Tuple[i], b.Tuple[i])
		}
		return fragment.Tuple(merged...)
	}
	if a.Kind == fragment.KindArray && b.Kind == fragment.KindArray {
		return fragment.Array(Merge(*a.Elem, *b.Elem))
	}
	if isStringOrBytes(a) && isStringOrBytes(b) {
		return fragment.Bytes()
	}
	if a.Kind == fragment.KindUint256 || b.Kind == fragment.KindUint256 {
		return fragment.Uint256()
	}
	return fragment.Bytes32()
}

func isStringOrBytes(p fragment.Param) bool {
	return p.Kind == fragment.KindString || p.Kind == fragment.KindBytes
}
