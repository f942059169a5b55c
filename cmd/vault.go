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

var vaultCmd = &cobra.Command{
	Use:   "vault <vault-address> <owner-address>",
	Short: "Show an ERC-4626 vault position",
	Long: `Read the owner's position in an ERC-4626 vault on the settlement
chain: shares held, their current asset value and the withdrawable amount.

Examples:
  flowswap vault 0xVault... 0xOwner...`,
	Args: cobra.ExactArgs(2),
	Run:  runVault,
}

func init() {
	rootCmd.AddCommand(vaultCmd)
}

func runVault(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient := client.New(apiURL)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Reading vault position..."
		s.Start()
	}

	resp, err := apiClient.VaultPosition(cmd.Context(), args[0], args[1])
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	v := resp.Vault
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                    VAULT POSITION")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Vault:        %s (%s)\n", color.CyanString(v.VaultAddress), v.Symbol)
	fmt.Printf("  Asset:        %s\n", color.HiBlackString(v.AssetAddress))
	fmt.Printf("  Shares:       %s\n", v.Shares)
	fmt.Printf("  Asset Value:  %s\n", v.AssetValue)
	fmt.Printf("  Withdrawable: %s\n", v.MaxWithdraw)
	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
