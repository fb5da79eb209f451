// Package oracle adapts the reference go-ethereum ABI decoder into a
// validation collaborator: decode a candidate type list against a
// buffer, and render each decoded value (recursively,
// for tuples and arrays) to canonical text so the inferencer and
// prettifier never have to reach into the oracle's own value
// representation.
package oracle

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Value is a decoded value rendered to canonical text. Composite
// values (tuples, arrays) additionally carry their component Values so
// callers can recurse in lockstep with a parameter-type tree without
// re-parsing a flattened string.
type Value struct {
	Text     string
	Children []Value
}

func (v Value) String() string { return v.Text }

// Decoder is the oracle collaborator contract core/guesser,
// core/inferencer, and core/prettify depend on. A caller may
// substitute any reference ABI decoder that honors this contract; the
// shape logic never reaches into the concrete type.
type Decoder interface {
	// TryDecode attempts to decode buf under the given canonical
	// Solidity type strings. It returns an error if decoding fails, or
	// if the candidate does not validate against buf (e.g.
	// out-of-bounds offsets/lengths). Bytes past the decoded values
	// are not checked.
	TryDecode(types []string, buf []byte) error
	// Decode is like TryDecode but also returns each decoded
	// top-level value, used by the prettifier to inspect values.
	Decode(types []string, buf []byte) ([]Value, error)
}

// Oracle is the default Decoder, backed by go-ethereum/accounts/abi.
type Oracle struct{}

func New() *Oracle { return &Oracle{} }

func (o *Oracle) TryDecode(types []string, buf []byte) error {
	_, err := o.Decode(types, buf)
	return err
}

func (o *Oracle) Decode(types []string, buf []byte) ([]Value, error) {
	args, err := buildArguments(types)
	if err != nil {
		return nil, fmt.Errorf("oracle: building argument list: %w", err)
	}
	values, err := args.UnpackValues(buf)
	if err != nil {
		return nil, fmt.Errorf("oracle: unpacking: %w", err)
	}
	if len(values) != len(types) {
		return nil, fmt.Errorf("oracle: expected %d values, got %d", len(types), len(values))
	}
	rendered := make([]Value, len(values))
	for i, v := range values {
		rendered[i] = render(v)
	}
	return rendered, nil
}

func buildArguments(types []string) (abi.Arguments, error) {
	args := make(abi.Arguments, len(types))
	for i, t := range types {
		base, components, err := splitType(t)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", t, err)
		}
		typ, err := abi.NewType(base, "", components)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", t, err)
		}
		args[i] = abi.Argument{Type: typ}
	}
	return args, nil
}

// splitType breaks a canonical Solidity type string into the base type
// string abi.NewType expects (e.g. "tuple[]", "uint256[]") plus, for a
// tuple or array-of-tuple, the component marshalings for each of its
// fields. abi.NewType never parses a parenthesized tuple expression
// itself — it only accepts the literal base type "tuple" alongside a
// separately supplied components slice — so a type string carrying a
// tuple anywhere in it has to be unwrapped recursively before it
// reaches abi.NewType.
func splitType(t string) (string, []abi.ArgumentMarshaling, error) {
	base := t
	var suffix string
	for strings.HasSuffix(base, "[]") {
		base = base[:len(base)-2]
		suffix += "[]"
	}
	if !strings.HasPrefix(base, "(") {
		return base + suffix, nil, nil
	}
	if !strings.HasSuffix(base, ")") {
		return "", nil, fmt.Errorf("malformed tuple %q", t)
	}
	fields, err := splitTupleFields(base[1 : len(base)-1])
	if err != nil {
		return "", nil, err
	}
	components := make([]abi.ArgumentMarshaling, len(fields))
	for i, f := range fields {
		fieldType, fieldComponents, err := splitType(f)
		if err != nil {
			return "", nil, err
		}
		components[i] = abi.ArgumentMarshaling{
			Name:       fmt.Sprintf("f%d", i),
			Type:       fieldType,
			Components: fieldComponents,
		}
	}
	return "tuple" + suffix, components, nil
}

// splitTupleFields splits a tuple's comma-separated field list at
// top-level commas only, so a nested tuple field's own commas don't
// fracture the split.
func splitTupleFields(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var fields []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parens in %q", s)
			}
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parens in %q", s)
	}
	return append(fields, s[start:]), nil
}

// render converts a decoded go-ethereum abi value into a Value tree,
// recursing through tuples (structs) and slices so every leaf keeps
// its own canonical text available to the prettifier.
func render(v interface{}) Value {
	switch val := v.(type) {
	case *big.Int:
		return Value{Text: val.String()}
	case common.Address:
		return Value{Text: val.Hex()}
	case [32]byte:
		return Value{Text: "0x" + common.Bytes2Hex(val[:])}
	case []byte:
		return Value{Text: "0x" + common.Bytes2Hex(val)}
	case string:
		return Value{Text: val}
	case bool:
		if val {
			return Value{Text: "true"}
		}
		return Value{Text: "false"}
	default:
		return renderReflective(v)
	}
}

func renderReflective(v interface{}) Value {
	children := reflectValue(v)
	if children == nil {
		return Value{Text: fmt.Sprintf("%v", v)}
	}
	out := Value{Children: make([]Value, len(children))}
	for i, f := range children {
		out.Children[i] = render(f)
	}
	return out
}
