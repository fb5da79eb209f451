package guesser

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/openabi/calldata-guesser/pkg/fragment"
)

func packWithSelector(t *testing.T, selector [4]byte, types []string, values ...interface{}) []byte {
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
	return append(selector[:], packed...)
}

func TestGuessTooShortReturnsNone(t *testing.T) {
	if _, ok := GuessFragment([]byte{0x01, 0x02}); ok {
		t.Error("expected no fragment for calldata shorter than a selector")
	}
}

func TestGuessEmptyReturnsNone(t *testing.T) {
	if _, ok := GuessFragment(nil); ok {
		t.Error("expected no fragment for empty calldata")
	}
}

func TestGuessSelectorOnly(t *testing.T) {
	// A 4-byte selector with zero arguments is a legitimate, if boring,
	// function call: transfer()'s cousin with no inputs.
	frag, ok := GuessFragment([]byte{0xde, 0xad, 0xbe, 0xef})
	if !ok {
		t.Fatal("expected a zero-argument fragment to be accepted")
	}
	if len(frag.Inputs) != 0 {
		t.Errorf("Inputs = %+v, want empty", frag.Inputs)
	}
}

func TestGuessMalformedArgsLengthRejected(t *testing.T) {
	calldata := append([]byte{0xaa, 0xbb, 0xcc, 0xdd}, make([]byte, 17)...)
	if _, ok := GuessFragment(calldata); ok {
		t.Error("expected calldata whose argument length isn't a multiple of 32 to be rejected")
	}
}

func TestGuessRecoversErc20Transfer(t *testing.T) {
	selector := [4]byte(crypto.Keccak256([]byte("transfer(address,uint256)"))[:4])
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	calldata := packWithSelector(t, selector, []string{"address", "uint256"},
		to, big.NewInt(1_000_000))

	frag, ok := GuessFragment(calldata)
	if !ok {
		t.Fatal("expected transfer(address,uint256) calldata to be accepted")
	}
	if len(frag.Inputs) != 2 {
		t.Fatalf("Inputs = %+v, want 2 params", frag.Inputs)
	}
	if frag.Inputs[0].Kind != fragment.KindAddress {
		t.Errorf("Inputs[0] = %v, want address", frag.Inputs[0].CanonicalType())
	}
	if frag.Inputs[1].Kind != fragment.KindUint256 {
		t.Errorf("Inputs[1] = %v, want uint256", frag.Inputs[1].CanonicalType())
	}
	if want := "guessed_" + hex.EncodeToString(selector[:]); frag.Name != want {
		t.Errorf("Name = %q, want %q", frag.Name, want)
	}
}

func TestGuessRecoversDynamicArrayOfStrings(t *testing.T) {
	selector := [4]byte{0x01, 0x02, 0x03, 0x04}
	calldata := packWithSelector(t, selector, []string{"string[]"}, []string{"alpha", "beta", "gamma"})

	frag, ok := GuessFragment(calldata)
	if !ok {
		t.Fatal("expected string[] calldata to be accepted")
	}
	if len(frag.Inputs) != 1 || frag.Inputs[0].Kind != fragment.KindArray {
		t.Fatalf("Inputs = %+v, want a single array param", frag.Inputs)
	}
	if frag.Inputs[0].Elem.Kind != fragment.KindString {
		t.Errorf("array element = %v, want string", frag.Inputs[0].Elem.CanonicalType())
	}
}
