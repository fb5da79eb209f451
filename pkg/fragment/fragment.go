// Package fragment holds the inferencer's own lightweight parameter
// type algebra and the function-fragment type it eventually produces,
// decoupled from the oracle's go-ethereum abi.Type so the inferencer
// never has to round-trip through the oracle just to describe a shape.
package fragment

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is one value from the parameter type algebra the inferencer and
// prettifier operate over.
type Kind int

const (
	KindUint256 Kind = iota
	KindBytes32
	KindBytes
	KindString
	KindAddress
	KindFixedBytes // bytesN, 1 <= N <= 31
	KindTuple
	KindArray
)

// Param is a single decoded (or prettified) parameter.
type Param struct {
	Kind  Kind
	N     int     // FixedBytes width; unused otherwise
	Elem  *Param  // Array element type
	Tuple []Param // Tuple component types
}

func Uint256() Param    { return Param{Kind: KindUint256} }
func Bytes32() Param    { return Param{Kind: KindBytes32} }
func Bytes() Param      { return Param{Kind: KindBytes} }
func String() Param     { return Param{Kind: KindString} }
func Address() Param    { return Param{Kind: KindAddress} }
func FixedBytes(n int) Param {
	return Param{Kind: KindFixedBytes, N: n}
}
func Tuple(parts ...Param) Param { return Param{Kind: KindTuple, Tuple: parts} }
func Array(elem Param) Param     { return Param{Kind: KindArray, Elem: &elem} }

// CanonicalType renders a parameter using Solidity canonical type syntax.
func (p Param) CanonicalType() string {
	switch p.Kind {
	case KindUint256:
		return "uint256"
	case KindBytes32:
		return "bytes32"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindAddress:
		return "address"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(p.N)
	case KindTuple:
		parts := make([]string, len(p.Tuple))
		for i, c := range p.Tuple {
			parts[i] = c.CanonicalType()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case KindArray:
		return p.Elem.CanonicalType() + "[]"
	default:
		return ""
	}
}

// Equal reports whether two parameters are structurally identical.
func (p Param) Equal(o Param) bool {
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case KindFixedBytes:
		return p.N == o.N
	case KindArray:
		return p.Elem.Equal(*o.Elem)
	case KindTuple:
		if len(p.Tuple) != len(o.Tuple) {
			return false
		}
		for i := range p.Tuple {
			if !p.Tuple[i].Equal(o.Tuple[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Fragment is a guessed function: a cosmetic name plus its parameter list.
type Fragment struct {
	Name   string
	Inputs []Param
}

// Signature renders the fragment as name(t1,t2,...).
func (f *Fragment) Signature() string {
	parts := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		parts[i] = in.CanonicalType()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ","))
}

// Types returns the flat list of canonical type strings for the oracle.
func (f *Fragment) Types() []string {
	out := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		out[i] = in.CanonicalType()
	}
	return out
}
