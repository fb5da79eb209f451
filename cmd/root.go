package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var (
	configPath = "./config/guesser.yaml"
	rootCmd    = &cobra.Command{
		Use:   "calldata-guesser",
		Short: "Reconstruct a plausible function signature from raw calldata",
		Long: `calldata-guesser reconstructs a plausible function signature from a raw
transaction calldata payload, with no prior knowledge of the target
contract's source or ABI.

Such as "calldata-guesser guess 0x..." or "calldata-guesser serve" and so on
`,
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "Path to config file")
}
