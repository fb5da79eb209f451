package fragment

import "testing"

func TestCanonicalType(t *testing.T) {
	tests := []struct {
		name string
		p    Param
		want string
	}{
		{"uint256", Uint256(), "uint256"},
		{"bytes32", Bytes32(), "bytes32"},
		{"bytes", Bytes(), "bytes"},
		{"string", String(), "string"},
		{"address", Address(), "address"},
		{"bytes4", FixedBytes(4), "bytes4"},
		{"tuple", Tuple(Uint256(), Bytes()), "(uint256,bytes)"},
		{"array", Array(Uint256()), "uint256[]"},
		{"nested", Array(Tuple(String(), Array(Uint256()))), "(string,uint256[])[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.CanonicalType(); got != tt.want {
				t.Errorf("CanonicalType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParamEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Param
		want bool
	}{
		{"same kind", Uint256(), Uint256(), true},
		{"different kind", Uint256(), Bytes32(), false},
		{"fixed bytes same width", FixedBytes(4), FixedBytes(4), true},
		{"fixed bytes different width", FixedBytes(4), FixedBytes(8), false},
		{"tuple same shape", Tuple(Uint256(), Bytes()), Tuple(Uint256(), Bytes()), true},
		{"tuple different arity", Tuple(Uint256()), Tuple(Uint256(), Bytes()), false},
		{"tuple different component", Tuple(Uint256()), Tuple(Bytes32()), false},
		{"array same element", Array(Uint256()), Array(Uint256()), true},
		{"array different element", Array(Uint256()), Array(Bytes32()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFragmentSignature(t *testing.T) {
	f := &Fragment{Name: "guessed_deadbeef", Inputs: []Param{Uint256(), Tuple(Bytes(), Address())}}
	want := "guessed_deadbeef(uint256,(bytes,address))"
	if got := f.Signature(); got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}
}

func TestFragmentTypes(t *testing.T) {
	f := &Fragment{Inputs: []Param{Uint256(), String()}}
	got := f.Types()
	want := []string{"uint256", "string"}
	if len(got) != len(want) {
		t.Fatalf("Types() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
