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
	"flowswap/pkg/parser"
	"flowswap/pkg/quote"
	"flowswap/pkg/types"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <token-in> to <token-out>",
	Short: "Request a swap quote",
	Long: `Price a swap without executing it. Quotes stay valid for five minutes
and can be refreshed or executed by id.

Examples:
  flowswap quote 10 FLOW to USDC
  flowswap quote 250 USDC for stFLOW
  flowswap quote refresh <quote-id>`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	apiClient := client.New(apiURL)

	// "quote refresh <id>" re-prices an existing quote.
	if args[0] == "refresh" {
		if len(args) != 2 {
			printError(fmt.Errorf("usage: flowswap quote refresh <quote-id>"))
			os.Exit(1)
		}
		q, err := apiClient.RefreshQuote(cmd.Context(), args[1])
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		outputQuote(q, jsonOutput)
		return
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

	outputQuote(q, jsonOutput)
}

func outputQuote(q *quote.Quote, jsonOutput bool) {
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(q, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	displayQuote(q)
	fmt.Println("Execute this quote with:")
	color.Cyan("  flowswap swap --quote-id %s --recipient <address>\n", q.ID)
}

func displayQuote(q *quote.Quote) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Quote ID:        %s\n", color.CyanString(q.ID))
	fmt.Printf("  From:            %s %s\n", q.AmountIn, color.YellowString(q.TokenIn.Symbol))
	fmt.Printf("  To:              ~%s %s\n", q.AmountOut, color.YellowString(q.TokenOut.Symbol))
	fmt.Printf("  Price Impact:    %s%%\n", q.PriceImpactPercent)
	fmt.Printf("  Fee:             %s %s\n", q.FeeAmount, q.TokenIn.Symbol)
	fmt.Printf("  Network Cost:    ~%s FLOW\n", q.EstimatedSettlementCost)
	fmt.Printf("  Route:           %s\n", formatRoute(q))
	fmt.Printf("  Valid Until:     %s\n", q.ValidUntil.Local().Format("2006-01-02 15:04:05"))

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func formatRoute(q *quote.Quote) string {
	if len(q.Route) == 1 {
		return fmt.Sprintf("%s -> %s (direct)", q.TokenIn.Symbol, q.TokenOut.Symbol)
	}
	parts := []string{q.TokenIn.Symbol}
	for _, hop := range q.Route[:len(q.Route)-1] {
		parts = append(parts, shortAddr(hop.TokenOut))
	}
	parts = append(parts, q.TokenOut.Symbol)
	return strings.Join(parts, " -> ")
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + ".." + addr[len(addr)-4:]
}
