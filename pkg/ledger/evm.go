package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"flowswap/pkg/token"
)

const (
	// ProbeTimeout bounds the startup reachability check; on timeout the
	// client degrades to the configured chain id instead of blocking.
	ProbeTimeout = 5 * time.Second

	finalityPollInterval = 2 * time.Second
	finalityTimeout      = 2 * time.Minute
)

// Router (UniswapV2-style) and ERC-20 fragments used by the client.
const routerABI = `[
{"name":"swapExactTokensForTokens","type":"function","inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]},
{"name":"swapExactETHForTokens","type":"function","stateMutability":"payable","inputs":[{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]},
{"name":"swapExactTokensForETH","type":"function","inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]}]`

const erc20BalanceOfABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"}]`

// EVMClient settles swaps on Flow EVM through a DEX router contract. The
// native FLOW sentinel address in a path is translated to the router's
// wrapped representation by the ETH-style swap variants.
type EVMClient struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	from       common.Address
	chainID    *big.Int
	router     common.Address
	routerABI  abi.ABI
	logger     *slog.Logger
}

// EVMConfig configures an EVMClient.
type EVMConfig struct {
	RPCURL        string
	ChainID       int64
	PrivateKey    string
	RouterAddress string
}

// NewEVMClient connects to the RPC endpoint and prepares the signer.
func NewEVMClient(cfg EVMConfig, logger *slog.Logger) (*EVMClient, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC URL not configured")
	}
	if !common.IsHexAddress(cfg.RouterAddress) {
		return nil, fmt.Errorf("invalid router address: %s", cfg.RouterAddress)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to derive public key")
	}

	parsedABI, err := abi.JSON(strings.NewReader(routerABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse router ABI: %w", err)
	}

	return &EVMClient{
		client:     client,
		privateKey: privateKey,
		from:       crypto.PubkeyToAddress(*publicKey),
		chainID:    big.NewInt(cfg.ChainID),
		router:     common.HexToAddress(cfg.RouterAddress),
		routerABI:  parsedABI,
		logger:     logger,
	}, nil
}

// Probe checks that the RPC endpoint is reachable. It applies a fixed
// timeout and returns the configured chain id as a fallback when the
// endpoint does not answer in time.
func (e *EVMClient) Probe(ctx context.Context) (int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	id, err := e.client.ChainID(ctx)
	if err != nil {
		e.logger.Warn("ledger endpoint unreachable, using configured chain id", "error", err)
		return e.chainID.Int64(), false
	}
	return id.Int64(), true
}

// Submit signs and broadcasts the swap through the router contract.
func (e *EVMClient) Submit(ctx context.Context, params SubmitParams) (string, error) {
	if !common.IsHexAddress(params.Recipient) {
		return "", fmt.Errorf("invalid recipient address: %s", params.Recipient)
	}
	recipient := common.HexToAddress(params.Recipient)

	nonce, err := e.client.PendingNonceAt(ctx, e.from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	amountIn := toBaseUnits(params.AmountIn, params.TokenIn.Decimals)
	minOut := toBaseUnits(params.MinAmountOut, params.TokenOut.Decimals)
	deadline := big.NewInt(params.Deadline.Unix())
	path := make([]common.Address, len(params.Path))
	for i, addr := range params.Path {
		path[i] = common.HexToAddress(addr)
	}

	var (
		data  []byte
		value = big.NewInt(0)
	)
	switch {
	case params.TokenIn.IsNative():
		data, err = e.routerABI.Pack("swapExactETHForTokens", minOut, path, recipient, deadline)
		value = amountIn
	case params.TokenOut.IsNative():
		data, err = e.routerABI.Pack("swapExactTokensForETH", amountIn, minOut, path, recipient, deadline)
	default:
		data, err = e.routerABI.Pack("swapExactTokensForTokens", amountIn, minOut, path, recipient, deadline)
	}
	if err != nil {
		return "", fmt.Errorf("failed to pack swap calldata: %w", err)
	}

	gasLimit := uint64(300_000)
	msg := ethereum.CallMsg{From: e.from, To: &e.router, Value: value, Data: data}
	if estimated, err := e.client.EstimateGas(ctx, msg); err == nil {
		gasLimit = estimated * 120 / 100
	}

	tx := ethtypes.NewTransaction(nonce, e.router, value, gasLimit, gasPrice, data)
	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(e.chainID), e.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := e.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	hash := signedTx.Hash().Hex()
	e.logger.Info("swap submitted", "hash", hash, "router", e.router.Hex(), "nonce", nonce)
	return hash, nil
}

// AwaitFinality polls for the transaction receipt until it is sealed,
// reverted, or the wait times out.
func (e *EVMClient) AwaitFinality(ctx context.Context, hash string) (Finality, error) {
	ctx, cancel := context.WithTimeout(ctx, finalityTimeout)
	defer cancel()

	txHash := common.HexToHash(hash)
	ticker := time.NewTicker(finalityPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := e.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status == ethtypes.ReceiptStatusSuccessful {
				return Sealed, nil
			}
			return Reverted, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return "", fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("timed out waiting for finality of %s: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Balance returns the owner's balance of a token in display units, reading
// the chain's native balance or the token contract as appropriate.
func (e *EVMClient) Balance(ctx context.Context, owner string, t token.Token) (decimal.Decimal, error) {
	if !common.IsHexAddress(owner) {
		return decimal.Zero, fmt.Errorf("invalid owner address: %s", owner)
	}
	account := common.HexToAddress(owner)

	if t.IsNative() {
		bal, err := e.client.BalanceAt(ctx, account, nil)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
		}
		return decimal.NewFromBigInt(bal, -t.Decimals), nil
	}

	parsedABI, err := abi.JSON(strings.NewReader(erc20BalanceOfABI))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balanceOf ABI: %w", err)
	}
	data, err := parsedABI.Pack("balanceOf", account)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to pack balanceOf data: %w", err)
	}

	contract := common.HexToAddress(t.Address)
	result, err := e.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to call balanceOf: %w", err)
	}

	bal := new(big.Int).SetBytes(result)
	return decimal.NewFromBigInt(bal, -t.Decimals), nil
}

// RawClient exposes the underlying RPC client for collaborators that issue
// their own contract reads.
func (e *EVMClient) RawClient() *ethclient.Client {
	return e.client
}

// Close closes the underlying RPC connection.
func (e *EVMClient) Close() {
	if e.client != nil {
		e.client.Close()
	}
}

// toBaseUnits converts a display-unit amount to the token's smallest unit.
func toBaseUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Truncate(0).BigInt()
}
