package token

// Token describes a tradeable asset on Flow EVM. Tokens are registered once
// at process start and never mutated.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

// NativeAddress is the conventional sentinel address for the chain's native
// asset (FLOW on Flow EVM).
const NativeAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// IsNative reports whether the token is the chain's native asset rather than
// an ERC-20 contract.
func (t Token) IsNative() bool {
	return t.Address == NativeAddress
}

// Pool is a liquidity pool connecting two tokens. The pair is unordered: a
// pool quotes in both directions. FeePPM is the pool's fee in parts per
// million (3000 = 0.30%, 500 = 0.05%); the wire format calls this field
// feeBps for historical reasons.
type Pool struct {
	Address   string `json:"address"`
	TokenA    Token  `json:"tokenA"`
	TokenB    Token  `json:"tokenB"`
	FeePPM    int64  `json:"feeBps"`
	Liquidity string `json:"liquidity"`
}

// Connects reports whether the pool connects the two addresses, in either
// orientation.
func (p Pool) Connects(a, b string) bool {
	return (p.TokenA.Address == a && p.TokenB.Address == b) ||
		(p.TokenA.Address == b && p.TokenB.Address == a)
}

// Other returns the pool's counterpart token for the given address.
func (p Pool) Other(addr string) (Token, bool) {
	switch addr {
	case p.TokenA.Address:
		return p.TokenB, true
	case p.TokenB.Address:
		return p.TokenA, true
	}
	return Token{}, false
}
