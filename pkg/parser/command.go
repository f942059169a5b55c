// Package parser turns natural swap phrases like "10 FLOW to USDC" into
// structured commands for the CLI.
package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// SwapCommand is the structured form of a parsed swap phrase.
type SwapCommand struct {
	AmountIn string
	TokenIn  string
	TokenOut string
}

var commandPattern = regexp.MustCompile(`(?i)^(?:swap\s+)?([0-9]+(?:\.[0-9]+)?)\s+(\$?[a-z][a-z0-9]*)\s+(?:to|for|into|->)\s+(\$?[a-z][a-z0-9]*)$`)

// Common alternate spellings of the supported symbols.
var symbolAliases = map[string]string{
	"FLOWTOKEN":  "FLOW",
	"STAKEDFLOW": "stFLOW",
	"SFLOW":      "stFLOW",
	"ETH":        "WETH",
	"TETHER":     "USDT",
}

// Parse interprets phrases of the form "[swap] <amount> <token> to <token>".
func Parse(input string) (*SwapCommand, error) {
	m := commandPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return nil, fmt.Errorf("could not parse %q, expected something like \"10 FLOW to USDC\"", input)
	}

	return &SwapCommand{
		AmountIn: m[1],
		TokenIn:  normalizeSymbol(m[2]),
		TokenOut: normalizeSymbol(m[3]),
	}, nil
}

func normalizeSymbol(s string) string {
	s = strings.ToUpper(strings.TrimPrefix(s, "$"))
	if canonical, ok := symbolAliases[s]; ok {
		return canonical
	}
	if s == "STFLOW" {
		return "stFLOW"
	}
	return s
}
