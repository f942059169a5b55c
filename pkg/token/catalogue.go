package token

// The default catalogue and pool set for Flow EVM mainnet. Both are fixed
// for the process lifetime; there is no dynamic listing or liquidity
// tracking in this design.

// DefaultTokens returns the curated Flow EVM token catalogue.
func DefaultTokens() []Token {
	return []Token{
		{Address: NativeAddress, Symbol: "FLOW", Name: "Flow", Decimals: 8},
		{Address: "0xF1815bd50389c46847f0Bda824eC8da914045D14", Symbol: "USDC", Name: "USD Coin (stgUSDC)", Decimals: 6},
		{Address: "0x674843C06FF83502ddb4D37c2E09C01cdA38cbc8", Symbol: "USDT", Name: "Tether USD (stgUSDT)", Decimals: 6},
		{Address: "0x5598c0652B899EB40f169Dd5949BdBE0BF36ffDe", Symbol: "stFLOW", Name: "Staked Flow", Decimals: 8},
		{Address: "0x2F6F07CDcf3588944Bf4C42aC74ff24bF56e7590", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
	}
}

// DefaultPools returns the curated pool set over the default catalogue.
// Fee tiers follow the usual 0.30% volatile / 0.05% stable split.
func DefaultPools() []Pool {
	tokens := DefaultTokens()
	bySymbol := make(map[string]Token, len(tokens))
	for _, t := range tokens {
		bySymbol[t.Symbol] = t
	}

	return []Pool{
		{
			Address:   "0x8b8b08e26f33C3cF6d9aCBbe4a0c5B29f1a1e6c0",
			TokenA:    bySymbol["FLOW"],
			TokenB:    bySymbol["USDC"],
			FeePPM:    3000,
			Liquidity: "2450000",
		},
		{
			Address:   "0x41a0C58a0b4bBfD6DCbDcb2e0fBf4a22bF2aA6b1",
			TokenA:    bySymbol["FLOW"],
			TokenB:    bySymbol["USDT"],
			FeePPM:    3000,
			Liquidity: "1180000",
		},
		{
			Address:   "0x7c63bAfD45C132C9018a5bC16Ee1b5cCcE04E5e2",
			TokenA:    bySymbol["USDC"],
			TokenB:    bySymbol["USDT"],
			FeePPM:    500,
			Liquidity: "5320000",
		},
		{
			Address:   "0x93d2E5ce8A0aDcF9eC02Cf9a9Bd08B9f7a62D7c3",
			TokenA:    bySymbol["FLOW"],
			TokenB:    bySymbol["stFLOW"],
			FeePPM:    500,
			Liquidity: "860000",
		},
		{
			Address:   "0xc5Fd0b9a60d3e8B1f2A96e9C0bE6bEaD9b7fD414",
			TokenA:    bySymbol["FLOW"],
			TokenB:    bySymbol["WETH"],
			FeePPM:    3000,
			Liquidity: "940000",
		},
	}
}
