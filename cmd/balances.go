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
)

var balancesCmd = &cobra.Command{
	Use:   "balances <address>",
	Short: "Show token balances for an address",
	Long: `Read the address's balance of every supported token from the
settlement chain.

Examples:
  flowswap balances 0x123...`,
	Args: cobra.ExactArgs(1),
	Run:  runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func runBalances(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	address := args[0]

	apiClient := client.New(apiURL)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching balances..."
		s.Start()
	}

	tokens, err := apiClient.ListTokens(cmd.Context())
	if err != nil {
		if !jsonOutput {
			s.Stop()
		}
		printError(err)
		os.Exit(1)
	}

	resp, err := apiClient.Balances(cmd.Context(), address)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	balances := resp.Balances

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                    TOKEN BALANCES")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Address: %s\n\n", color.CyanString(address))
	for _, t := range tokens.Tokens {
		if bal, ok := balances[t.Address]; ok {
			fmt.Printf("  %-8s %s\n", color.YellowString(t.Symbol), bal)
		}
	}
	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
