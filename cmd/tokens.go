package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flowswap/pkg/client"
	"flowswap/pkg/token"
)

var filterSymbol string

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all supported tokens",
	Long: `List the tokens the quote engine supports.

Examples:
  flowswap list-tokens
  flowswap list-tokens --symbol USDC`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient := client.New(apiURL)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching supported tokens..."
		s.Start()
	}

	resp, err := apiClient.ListTokens(cmd.Context())
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	filtered := resp.Tokens
	if filterSymbol != "" {
		var temp []token.Token
		for _, t := range filtered {
			if strings.EqualFold(t.Symbol, filterSymbol) {
				temp = append(temp, t)
			}
		}
		filtered = temp
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                      SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()
	for _, t := range filtered {
		native := ""
		if t.IsNative() {
			native = color.YellowString(" (native)")
		}
		fmt.Printf("  %-8s %-20s %2d decimals  %s%s\n",
			color.CyanString(t.Symbol), t.Name, t.Decimals, color.HiBlackString(t.Address), native)
	}
	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}
