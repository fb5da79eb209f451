package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/openabi/calldata-guesser/core/guesser"
	"github.com/openabi/calldata-guesser/core/inferencer"
	"github.com/openabi/calldata-guesser/core/prettify"
	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/oracle"
)

var traceGuess bool

// ppTracer adapts inferencer.Tracer onto pp's pretty-printer, so
// --trace dumps each line of inferencer commentary (classification
// attempts, tail-resolution failures, oracle verdicts) through pp.
type ppTracer struct{}

func (ppTracer) Trace(format string, args ...interface{}) {
	pp.Println(fmt.Sprintf(format, args...))
}

var guessCmd = &cobra.Command{
	Use:   "guess <calldata hex>",
	Short: "Guess a function signature from raw calldata",
	Long: `guess reconstructs a plausible function signature from a raw
transaction calldata payload, printing the recovered signature or
reporting that no consistent parse exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.TrimPrefix(args[0], "0x")
		calldata, err := hex.DecodeString(raw)
		if err != nil {
			return fmt.Errorf("calldata is not valid hex: %w", err)
		}

		if !traceGuess {
			frag, ok := guesser.GuessFragment(calldata)
			if !ok {
				fmt.Println("no plausible shape found for this calldata")
				return nil
			}
			fmt.Println(frag.Signature())
			return nil
		}

		if len(calldata) < 4 {
			fmt.Println("no plausible shape found for this calldata")
			return nil
		}
		dec := oracle.New()
		inputs, ok := inferencer.InferTraced(calldata[4:], dec, ppTracer{})
		if !ok {
			fmt.Println("no plausible shape found for this calldata")
			return nil
		}
		candidate := &fragment.Fragment{
			Name:   "guessed_" + hex.EncodeToString(calldata[:4]),
			Inputs: inputs,
		}
		refined, err := prettify.Refine(candidate, dec, calldata[4:])
		if err != nil {
			pp.Println(candidate.Signature())
			return nil
		}
		pp.Println(refined.Signature())
		return nil
	},
}

func init() {
	guessCmd.Flags().BoolVar(&traceGuess, "trace", false, "pretty-print every classification attempt the inferencer makes")
	rootCmd.AddCommand(guessCmd)
}
