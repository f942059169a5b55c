package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flowswap/pkg/client"
	"flowswap/pkg/parser"
	"flowswap/pkg/types"
)

var (
	quoteID       string
	recipientAddr string
	slippagePct   float64
	noConfirm     bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <token-in> to <token-out>",
	Short: "Execute a token swap",
	Long: `Quote and execute a swap on Flow EVM.

Without --quote-id a fresh quote is requested first and shown for
confirmation. With --quote-id an existing quote is executed directly.

Examples:
  flowswap swap 10 FLOW to USDC --recipient 0x123...
  flowswap swap 250 USDC for stFLOW --recipient 0x123... --slippage 1.0
  flowswap swap --quote-id <id> --recipient 0x123... --yes`,
	Run: runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&quoteID, "quote-id", "", "Execute an existing quote instead of requesting a new one")
	swapCmd.Flags().StringVar(&recipientAddr, "recipient", "", "Recipient address (REQUIRED - where you'll receive tokens)")
	swapCmd.Flags().Float64Var(&slippagePct, "slippage", 0.5, "Slippage tolerance in percent")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if recipientAddr == "" {
		printError(fmt.Errorf("--recipient is required"))
		os.Exit(1)
	}

	apiClient := client.New(apiURL)

	id := quoteID
	if id == "" {
		if len(args) == 0 {
			printError(fmt.Errorf("specify a swap like \"10 FLOW to USDC\" or pass --quote-id"))
			os.Exit(1)
		}

		command, err := parser.Parse(strings.Join(args, " "))
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		if !jsonOutput {
			s.Suffix = " Fetching quote..."
			s.Start()
		}

		q, err := apiClient.RequestQuote(cmd.Context(), types.QuoteRequest{
			TokenInAddress:  command.TokenIn,
			TokenOutAddress: command.TokenOut,
			AmountIn:        command.AmountIn,
		})
		if !jsonOutput {
			s.Stop()
		}
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		if verbose {
			quoteJSON, _ := json.MarshalIndent(q, "", "  ")
			fmt.Println(string(quoteJSON))
		}
		if !jsonOutput {
			displayQuote(q)
		}

		if !noConfirm && !jsonOutput {
			if !confirmSwap() {
				fmt.Println("\nSwap cancelled.")
				os.Exit(0)
			}
		}
		id = q.ID
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Executing swap..."
		s.Start()
	}

	tx, err := apiClient.ExecuteSwap(cmd.Context(), types.SwapRequest{
		QuoteID:           id,
		UserAddress:       recipientAddr,
		SlippageTolerance: &slippagePct,
	})
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
		return
	}

	color.Green("\n✓ Swap confirmed!")
	fmt.Printf("  Transaction ID:  %s\n", color.CyanString(tx.ID))
	fmt.Printf("  Settlement Hash: %s\n", color.HiBlackString(tx.SettlementHash))
	fmt.Println("\nYou can check this transaction later with:")
	color.Cyan("  flowswap status %s\n", tx.ID)
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with this swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
