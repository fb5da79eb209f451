// Package guesser implements the top-level driver: split the opaque
// 4-byte selector off a calldata payload, run the tuple inferencer over
// the remainder, prettify the accepted candidate, and emit the final
// fragment.
package guesser

import (
	"encoding/hex"

	"github.com/openabi/calldata-guesser/core/inferencer"
	"github.com/openabi/calldata-guesser/core/prettify"
	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/logger"
	"github.com/openabi/calldata-guesser/pkg/oracle"
)

// Guesser is the library entry point, parameterized over the oracle
// collaborator so a caller may substitute their own reference ABI
// decoder.
type Guesser struct {
	oracle oracle.Decoder
	logger logger.Logger
}

// New builds a Guesser backed by the default go-ethereum-based oracle
// when dec is nil, and a no-op logger when log is nil.
func New(dec oracle.Decoder, log logger.Logger) *Guesser {
	if dec == nil {
		dec = oracle.New()
	}
	return &Guesser{oracle: dec, logger: logger.EnsureLogger(log)}
}

// Guess splits the selector off calldata, runs the inferencer over the
// remainder, and prettifies an oracle-accepted candidate before
// returning it. Empty input yields no fragment.
func (g *Guesser) Guess(calldata []byte) (*fragment.Fragment, bool) {
	if len(calldata) < 4 {
		return nil, false
	}
	selector := calldata[:4]
	args := calldata[4:]
	if len(args)%32 != 0 {
		// Malformed/packed encodings are out of scope.
		return nil, false
	}

	inputs, ok := inferencer.Infer(args, g.oracle)
	if !ok {
		return nil, false
	}

	candidate := &fragment.Fragment{
		Name:   "guessed_" + hex.EncodeToString(selector),
		Inputs: inputs,
	}

	refined, err := prettify.Refine(candidate, g.oracle, args)
	if err != nil {
		g.logger.Warn("prettify: falling back to unrefined candidate", "selector", candidate.Name, "error", err)
		return candidate, true
	}
	return refined, true
}

// GuessFragment is a package-level convenience wrapping New(nil, nil)
// for callers that don't need to customize the oracle or logger.
func GuessFragment(calldata []byte) (*fragment.Fragment, bool) {
	return New(nil, nil).Guess(calldata)
}
