// Package inferencer implements the calldata shape inferencer: a
// backtracking search that, under the well-formed-encoding assumption,
// classifies each head slot as a static scalar or a dynamic pointer and
// recursively resolves every pointed-to region, validating candidates
// against an ABI oracle. This is the hard core of the calldata guesser
// and its semantics are not diluted by the service layer built around
// it.
package inferencer

import (
	"github.com/openabi/calldata-guesser/pkg/calldata"
	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/oracle"
)

// classifiedSlot is one entry in the classification accumulator:
// either a static scalar slot, or a dynamic-pointer placeholder
// carrying {offset, length?}.
type classifiedSlot struct {
	static    bool
	offset    int
	hasLength bool
	length    int
}

// modeConstraint pins the classification of every head slot of a
// particular recursive activation, used only when that activation
// decodes what might be an array of dynamic elements: each slot must be
// a pointer-with-length (assumeLength) or a pointer-without-length, and
// never a static scalar. Activations started from tail resolution run
// unconstrained.
type modeConstraint struct {
	assumeLength bool
}

// Tracer receives a line of commentary for every attempted
// classification, used by the CLI's verbose trace output. A nil
// Tracer records nothing.
type Tracer interface {
	Trace(format string, args ...interface{})
}

// Infer runs the full backtracking search over buf from slot 0 with no
// mode constraint, and returns the resolved parameter list plus
// whether the oracle accepted it.
func Infer(buf []byte, dec oracle.Decoder) ([]fragment.Param, bool) {
	return InferTraced(buf, dec, nil)
}

func InferTraced(buf []byte, dec oracle.Decoder, tr Tracer) ([]fragment.Param, bool) {
	b := calldata.NewBuffer(buf)
	return classify(b, 0, nil, b.Len(), nil, dec, tr)
}

// classify walks the static head slot by slot, trying pointer and
// static interpretations in turn and backtracking on failure. acc holds
// the slots classified so far; endOfStatic shrinks as pointers are
// discovered. mode, when non-nil, applies to every slot of this
// activation (see modeConstraint).
func classify(buf calldata.Buffer, i int, acc []classifiedSlot, endOfStatic int, mode *modeConstraint, dec oracle.Decoder, tr Tracer) ([]fragment.Param, bool) {
	if i*32 >= endOfStatic {
		return resolveTail(buf, acc, dec, tr)
	}

	tryPointerWithLength := true
	tryPointerWithoutLength := true
	tryStatic := true
	if mode != nil {
		tryStatic = false
		if mode.assumeLength {
			tryPointerWithoutLength = false
		} else {
			tryPointerWithLength = false
		}
	}

	pos := i * 32

	if tryPointerWithLength {
		if off, ok := buf.ProbeOffset(pos); ok {
			if length, ok2 := buf.ProbeLength(off); ok2 {
				trace(tr, "slot %d: try pointer-with-length offset=%d length=%d", i, off, length)
				next := append(cloneSlots(acc), classifiedSlot{offset: off, hasLength: true, length: length})
				if res, ok := classify(buf, i+1, next, shrink(endOfStatic, off), mode, dec, tr); ok {
					return res, true
				}
			}
		}
	}

	if tryPointerWithoutLength {
		if off, ok := buf.ProbeOffset(pos); ok {
			trace(tr, "slot %d: try pointer-without-length offset=%d", i, off)
			next := append(cloneSlots(acc), classifiedSlot{offset: off, hasLength: false})
			if res, ok := classify(buf, i+1, next, shrink(endOfStatic, off), mode, dec, tr); ok {
				return res, true
			}
		}
	}

	if tryStatic {
		trace(tr, "slot %d: try static scalar", i)
		next := append(cloneSlots(acc), classifiedSlot{static: true})
		if res, ok := classify(buf, i+1, next, endOfStatic, mode, dec, tr); ok {
			return res, true
		}
	}

	return nil, false
}

func shrink(endOfStatic, off int) int {
	if off < endOfStatic {
		return off
	}
	return endOfStatic
}

// cloneSlots copies the accumulator so a rejected branch never leaves
// observable changes visible to its siblings.
func cloneSlots(acc []classifiedSlot) []classifiedSlot {
	out := make([]classifiedSlot, len(acc), len(acc)+1)
	copy(out, acc)
	return out
}

func trace(tr Tracer, format string, args ...interface{}) {
	if tr != nil {
		tr.Trace(format, args...)
	}
}
