package prettify

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/oracle"
)

func pack(t *testing.T, types []string, values ...interface{}) []byte {
	t.Helper()
	args := make(abi.Arguments, len(types))
	for i, ty := range types {
		typ, err := abi.NewType(ty, "", nil)
		if err != nil {
			t.Fatalf("abi.NewType(%q): %v", ty, err)
		}
		args[i] = abi.Argument{Type: typ}
	}
	packed, err := args.Pack(values...)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	return packed
}

func TestRefineScalars(t *testing.T) {
	// An address value with no zero bytes of its own, so the word's
	// only zero run is the mandatory 12-byte left pad.
	addr := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	// A generic bytes32 value with no leading or trailing zero bytes,
	// so it isn't reclassified as address/uint256/bytesN.
	var plain32 [32]byte
	for i := range plain32 {
		plain32[i] = byte(i + 1)
	}
	buf := pack(t, []string{"address", "uint256", "bytes32", "bytes4"},
		addr, big.NewInt(7), plain32, [4]byte{1, 2, 3, 4})

	frag := &fragment.Fragment{Name: "f", Inputs: []fragment.Param{
		fragment.Bytes32(), fragment.Bytes32(), fragment.Bytes32(), fragment.Bytes32(),
	}}
	refined, err := Refine(frag, oracle.New(), buf)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	want := []fragment.Param{fragment.Address(), fragment.Uint256(), fragment.Bytes32(), fragment.FixedBytes(4)}
	for i, w := range want {
		if !refined.Inputs[i].Equal(w) {
			t.Errorf("Inputs[%d] = %v, want %v", i, refined.Inputs[i].CanonicalType(), w.CanonicalType())
		}
	}
}

func TestRefineBytesVsString(t *testing.T) {
	buf := pack(t, []string{"bytes", "bytes"}, []byte("hello world"), []byte{0xff, 0xfe, 0x00})

	frag := &fragment.Fragment{Name: "f", Inputs: []fragment.Param{fragment.Bytes(), fragment.Bytes()}}
	refined, err := Refine(frag, oracle.New(), buf)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if !refined.Inputs[0].Equal(fragment.String()) {
		t.Errorf("Inputs[0] = %v, want string", refined.Inputs[0].CanonicalType())
	}
	if !refined.Inputs[1].Equal(fragment.Bytes()) {
		t.Errorf("Inputs[1] = %v, want bytes", refined.Inputs[1].CanonicalType())
	}
}

func TestRefineArrayMergesElementTypes(t *testing.T) {
	buf := pack(t, []string{"bytes[]"}, [][]byte{[]byte("abc"), {0xff, 0xfe}})

	frag := &fragment.Fragment{Name: "f", Inputs: []fragment.Param{fragment.Array(fragment.Bytes())}}
	refined, err := Refine(frag, oracle.New(), buf)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	// One element looks like valid UTF-8 text, the other doesn't; the
	// merged element type must fall back to the common bytes type.
	if refined.Inputs[0].Elem.Kind != fragment.KindBytes {
		t.Errorf("array element = %v, want bytes", refined.Inputs[0].Elem.CanonicalType())
	}
}

func TestRefineTupleRecurses(t *testing.T) {
	tupleType, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "addr", Type: "address"},
		{Name: "data", Type: "bytes"},
	})
	if err != nil {
		t.Fatalf("abi.NewType: %v", err)
	}
	type pair struct {
		Addr common.Address
		Data []byte
	}
	args := abi.Arguments{{Type: tupleType}}
	buf, err := args.Pack(pair{Addr: common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"), Data: []byte("plain text")})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	frag := &fragment.Fragment{Name: "f", Inputs: []fragment.Param{fragment.Tuple(fragment.Bytes32(), fragment.Bytes())}}
	refined, err := Refine(frag, oracle.New(), buf)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	tuple := refined.Inputs[0]
	if tuple.Tuple[0].Kind != fragment.KindAddress {
		t.Errorf("tuple[0] = %v, want address", tuple.Tuple[0].CanonicalType())
	}
	if tuple.Tuple[1].Kind != fragment.KindString {
		t.Errorf("tuple[1] = %v, want string", tuple.Tuple[1].CanonicalType())
	}
}
