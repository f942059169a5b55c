// Package vault reads ERC-4626 vault positions from the settlement chain.
package vault

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
)

const vaultABI = `[
{"name":"asset","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
{"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"name":"convertToAssets","type":"function","stateMutability":"view","inputs":[{"name":"shares","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"name":"maxWithdraw","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}]`

// Position is an owner's stake in one vault, share and asset amounts in
// display units.
type Position struct {
	VaultAddress string `json:"vaultAddress"`
	Symbol       string `json:"symbol"`
	AssetAddress string `json:"assetAddress"`
	Shares       string `json:"shares"`
	AssetValue   string `json:"assetValue"`
	MaxWithdraw  string `json:"maxWithdraw"`
}

// Scanner reads vault state over a raw RPC client.
type Scanner struct {
	client *ethclient.Client
	abi    abi.ABI
}

// NewScanner creates a vault scanner.
func NewScanner(client *ethclient.Client) (*Scanner, error) {
	parsed, err := abi.JSON(strings.NewReader(vaultABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse vault ABI: %w", err)
	}
	return &Scanner{client: client, abi: parsed}, nil
}

// Scan reads the owner's position in the vault at vaultAddr.
func (s *Scanner) Scan(ctx context.Context, vaultAddr, owner string) (*Position, error) {
	if !common.IsHexAddress(vaultAddr) {
		return nil, fmt.Errorf("invalid vault address: %s", vaultAddr)
	}
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address: %s", owner)
	}
	contract := common.HexToAddress(vaultAddr)
	account := common.HexToAddress(owner)

	var symbol string
	if err := s.call(ctx, contract, &symbol, "symbol"); err != nil {
		return nil, err
	}
	var asset common.Address
	if err := s.call(ctx, contract, &asset, "asset"); err != nil {
		return nil, err
	}
	var decimals uint8
	if err := s.call(ctx, contract, &decimals, "decimals"); err != nil {
		return nil, err
	}

	var shares *big.Int
	if err := s.call(ctx, contract, &shares, "balanceOf", account); err != nil {
		return nil, err
	}
	var assetValue *big.Int
	if err := s.call(ctx, contract, &assetValue, "convertToAssets", shares); err != nil {
		return nil, err
	}
	var maxWithdraw *big.Int
	if err := s.call(ctx, contract, &maxWithdraw, "maxWithdraw", account); err != nil {
		return nil, err
	}

	exp := -int32(decimals)
	return &Position{
		VaultAddress: vaultAddr,
		Symbol:       symbol,
		AssetAddress: asset.Hex(),
		Shares:       decimal.NewFromBigInt(shares, exp).String(),
		AssetValue:   decimal.NewFromBigInt(assetValue, exp).String(),
		MaxWithdraw:  decimal.NewFromBigInt(maxWithdraw, exp).String(),
	}, nil
}

func (s *Scanner) call(ctx context.Context, contract common.Address, out interface{}, method string, args ...interface{}) error {
	data, err := s.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	result, err := s.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return fmt.Errorf("%s call failed: %w", method, err)
	}
	values, err := s.abi.Unpack(method, result)
	if err != nil {
		return fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(values) != 1 {
		return fmt.Errorf("unexpected %s result arity %d", method, len(values))
	}
	return assign(out, values[0])
}

func assign(dst interface{}, v interface{}) error {
	switch d := dst.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string result, got %T", v)
		}
		*d = s
	case *uint8:
		n, ok := v.(uint8)
		if !ok {
			return fmt.Errorf("expected uint8 result, got %T", v)
		}
		*d = n
	case *common.Address:
		a, ok := v.(common.Address)
		if !ok {
			return fmt.Errorf("expected address result, got %T", v)
		}
		*d = a
	case **big.Int:
		n, ok := v.(*big.Int)
		if !ok {
			return fmt.Errorf("expected uint256 result, got %T", v)
		}
		*d = n
	default:
		return fmt.Errorf("unsupported result target %T", dst)
	}
	return nil
}
