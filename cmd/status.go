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
	"flowswap/pkg/swap"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <transaction-id>",
	Short: "Check the status of a swap transaction",
	Long: `Check the settlement status of a swap by its transaction id.

Examples:
  flowswap status 6f1c7a2e-...
  flowswap status 6f1c7a2e-... --watch
  flowswap status 6f1c7a2e-... --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	transactionID := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient := client.New(apiURL)

	if watchStatus {
		watchSwapStatus(cmd, apiClient, transactionID, jsonOutput)
	} else {
		checkSwapStatus(cmd, apiClient, transactionID, jsonOutput)
	}
}

func checkSwapStatus(cmd *cobra.Command, apiClient *client.Client, transactionID string, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking swap status..."
		s.Start()
	}

	tx, err := apiClient.GetTransaction(cmd.Context(), transactionID)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(tx, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayStatus(tx)
	}
}

func watchSwapStatus(cmd *cobra.Command, apiClient *client.Client, transactionID string, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching swap status (Transaction ID: %s)\n", color.CyanString(transactionID))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	checkAndDisplayStatus(cmd, apiClient, transactionID)

	for range ticker.C {
		checkAndDisplayStatus(cmd, apiClient, transactionID)
	}
}

func checkAndDisplayStatus(cmd *cobra.Command, apiClient *client.Client, transactionID string) {
	tx, err := apiClient.GetTransaction(cmd.Context(), transactionID)
	if err != nil {
		color.Red("Error: %v", err)
		return
	}

	displayStatus(tx)
}

func displayStatus(tx *swap.Transaction) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SWAP STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Transaction ID:  %s\n", color.CyanString(tx.ID))
	fmt.Printf("  Status:          %s\n", coloredStatus(tx.Status))
	fmt.Printf("  Created:         %s\n", tx.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Pair:            %s -> %s\n", tx.Quote.TokenIn.Symbol, tx.Quote.TokenOut.Symbol)
	fmt.Printf("  Amount In:       %s\n", tx.Quote.AmountIn)
	fmt.Printf("  Amount Out:      ~%s\n", tx.Quote.AmountOut)

	if tx.SettlementHash != "" {
		fmt.Printf("  Settlement Tx:   %s\n", color.HiBlackString(tx.SettlementHash))
	}
	if tx.ErrorMessage != "" {
		fmt.Printf("  Error:           %s\n", color.RedString(tx.ErrorMessage))
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func coloredStatus(status swap.Status) string {
	s := strings.ToUpper(string(status))

	switch status {
	case swap.StatusConfirmed:
		return color.GreenString(s)
	case swap.StatusPending:
		return color.YellowString(s)
	case swap.StatusFailed:
		return color.RedString(s)
	default:
		return s
	}
}
