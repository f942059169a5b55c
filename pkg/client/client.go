// Package client is a REST client for the quote engine API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flowswap/pkg/quote"
	"flowswap/pkg/swap"
	"flowswap/pkg/types"
)

// Client talks to a running quote engine over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListTokens returns the supported token set.
func (c *Client) ListTokens(ctx context.Context) (*types.TokensResponse, error) {
	var resp types.TokensResponse
	if err := c.get(ctx, "/api/v1/tokens", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Balances returns the address's balance of every supported token.
func (c *Client) Balances(ctx context.Context, userAddress string) (*types.BalancesResponse, error) {
	var resp types.BalancesResponse
	path := "/api/v1/balances?userAddress=" + url.QueryEscape(userAddress)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestQuote asks the engine to price a trade.
func (c *Client) RequestQuote(ctx context.Context, req types.QuoteRequest) (*quote.Quote, error) {
	var resp types.QuoteResponse
	if err := c.post(ctx, "/api/v1/quote", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Quote, nil
}

// RefreshQuote re-prices an existing quote, returning a new one.
func (c *Client) RefreshQuote(ctx context.Context, quoteID string) (*quote.Quote, error) {
	var resp types.QuoteResponse
	if err := c.post(ctx, "/api/v1/quote/refresh", types.RefreshRequest{QuoteID: quoteID}, &resp); err != nil {
		return nil, err
	}
	return &resp.Quote, nil
}

// QuoteValidity reports whether a quote is still executable.
func (c *Client) QuoteValidity(ctx context.Context, quoteID string) (*types.ValidityResponse, error) {
	var resp types.ValidityResponse
	path := "/api/v1/quote/valid?quoteId=" + url.QueryEscape(quoteID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteSwap settles a quote and returns the transaction record.
func (c *Client) ExecuteSwap(ctx context.Context, req types.SwapRequest) (*swap.Transaction, error) {
	var resp types.TransactionResponse
	if err := c.post(ctx, "/api/v1/swap", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// GetTransaction fetches one transaction by id.
func (c *Client) GetTransaction(ctx context.Context, id string) (*swap.Transaction, error) {
	var resp types.TransactionResponse
	if err := c.get(ctx, "/api/v1/transactions/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// ListTransactions fetches every recorded transaction.
func (c *Client) ListTransactions(ctx context.Context) (*types.TransactionsResponse, error) {
	var resp types.TransactionsResponse
	if err := c.get(ctx, "/api/v1/transactions", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VaultPosition fetches an ERC-4626 vault position.
func (c *Client) VaultPosition(ctx context.Context, vaultAddress, userAddress string) (*types.VaultResponse, error) {
	var resp types.VaultResponse
	path := "/api/v1/vaults/" + url.PathEscape(vaultAddress) + "?userAddress=" + url.QueryEscape(userAddress)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseErrorResponse(resp *http.Response) error {
	var apiErr types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("api error: status %d", resp.StatusCode)
}
