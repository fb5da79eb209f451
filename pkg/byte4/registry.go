// Package byte4 matches a 4-byte calldata selector against a small
// built-in table of well-known function signatures: a fixed seed list
// of widely deployed standards, since this service has no ABI to parse
// in the first place.
//
// This is a cosmetic enrichment only: Registry.Lookup never drives
// shape inference, it just lets the guesser annotate a result with a
// human name when the selector happens to belong to a widely deployed
// standard like ERC20 or ERC721.
package byte4

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// wellKnownSignatures lists canonical function signatures common
// enough across deployed contracts (ERC20, ERC721, ERC165, Multicall)
// to be worth recognizing by selector alone.
var wellKnownSignatures = []string{
	"transfer(address,uint256)",
	"transferFrom(address,address,uint256)",
	"approve(address,uint256)",
	"allowance(address,address)",
	"balanceOf(address)",
	"totalSupply()",
	"decimals()",
	"symbol()",
	"name()",
	"ownerOf(uint256)",
	"safeTransferFrom(address,address,uint256)",
	"safeTransferFrom(address,address,uint256,bytes)",
	"setApprovalForAll(address,bool)",
	"isApprovedForAll(address,address)",
	"supportsInterface(bytes4)",
	"multicall(bytes[])",
	"permit(address,address,uint256,uint256,uint8,bytes32,bytes32)",
}

// Registry maps a 4-byte selector to the canonical signature it was
// derived from.
type Registry struct {
	bySelector map[[4]byte]string
}

// NewRegistry builds a Registry from the built-in well-known
// signature list.
func NewRegistry() *Registry {
	r := &Registry{bySelector: make(map[[4]byte]string, len(wellKnownSignatures))}
	for _, sig := range wellKnownSignatures {
		hash := crypto.Keccak256([]byte(sig))
		var selector [4]byte
		copy(selector[:], hash[:4])
		r.bySelector[selector] = sig
	}
	return r
}

// Lookup reports the canonical signature for selector, if it is one
// of the recognized well-known signatures.
func (r *Registry) Lookup(selector [4]byte) (string, bool) {
	sig, ok := r.bySelector[selector]
	return sig, ok
}
