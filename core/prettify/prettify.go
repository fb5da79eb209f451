// Package prettify implements the type prettifier and merge rules: a
// post-pass that refines the inferencer's generic types (bytes32,
// bytes) by inspecting the oracle-decoded values of the accepted
// candidate.
package prettify

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/oracle"
)

// Refine re-decodes frag against buf to obtain concrete values, then
// returns a new fragment with every parameter refined.
func Refine(frag *fragment.Fragment, dec oracle.Decoder, buf []byte) (*fragment.Fragment, error) {
	values, err := dec.Decode(frag.Types(), buf)
	if err != nil {
		return nil, err
	}
	out := make([]fragment.Param, len(frag.Inputs))
	for i, p := range frag.Inputs {
		v := oracle.Value{}
		if i < len(values) {
			v = values[i]
		}
		out[i] = refineParam(p, v)
	}
	return &fragment.Fragment{Name: frag.Name, Inputs: out}, nil
}

func refineParam(p fragment.Param, v oracle.Value) fragment.Param {
	switch p.Kind {
	case fragment.KindBytes32:
		return refineBytes32(v.Text)
	case fragment.KindBytes:
		return refineBytes(v.Text)
	case fragment.KindTuple:
		comps := make([]fragment.Param, len(p.Tuple))
		for i, c := range p.Tuple {
			if i < len(v.Children) {
				comps[i] = refineParam(c, v.Children[i])
			} else {
				comps[i] = c
			}
		}
		return fragment.Tuple(comps...)
	case fragment.KindArray:
		return fragment.Array(refineArray(*p.Elem, v.Children))
	default:
		return p
	}
}

// refineArray refines every element then merges the refinements into
// one uniform element type so the array type stays consistent.
func refineArray(elem fragment.Param, children []oracle.Value) fragment.Param {
	if len(children) == 0 {
		return elem
	}
	refined := make([]fragment.Param, len(children))
	for i, c := range children {
		refined[i] = refineParam(elem, c)
	}
	return lo.Reduce(refined[1:], func(acc fragment.Param, p fragment.Param, _ int) fragment.Param {
		return Merge(acc, p)
	}, refined[0])
}

func refineBytes32(text string) fragment.Param {
	b := decodeHex(text)
	if len(b) != 32 {
		return fragment.Bytes32()
	}
	leading := countLeadingZeros(b)
	if leading >= 12 && leading <= 17 {
		return fragment.Address()
	}
	if leading > 16 {
		return fragment.Uint256()
	}
	trailing := countTrailingZeros(b)
	if trailing > 0 {
		return fragment.FixedBytes(32 - trailing)
	}
	return fragment.Bytes32()
}

func refineBytes(text string) fragment.Param {
	b := decodeHex(text)
	if utf8.Valid(b) {
		return fragment.String()
	}
	return fragment.Bytes()
}

func decodeHex(text string) []byte {
	text = strings.TrimPrefix(text, "0x")
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil
	}
	return b
}

func countLeadingZeros(b []byte) int {
	n := 0
	for _, c := range b {
		if c != 0 {
			break
		}
		n++
	}
	return n
}

func countTrailingZeros(b []byte) int {
	n := 0
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			break
		}
		n++
	}
	return n
}
