package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "flowswap",
	Short: "A swap quote and route engine for Flow EVM",
	Long: `flowswap prices token swaps over a static pool graph on Flow EVM,
issues time-bounded quotes and settles them through a DEX router.

Run the engine with "flowswap serve", then use the other commands
against it.

Examples:
  flowswap serve
  flowswap quote 10 FLOW to USDC
  flowswap swap 10 FLOW to USDC --recipient 0x123...
  flowswap list-tokens
  flowswap status <transaction-id>`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "Base URL of a running flowswap server")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
