package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"flowswap/pkg/quote"
	"flowswap/pkg/route"
	"flowswap/pkg/swap"
	"flowswap/pkg/types"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleListTokens() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.TokensResponse{Tokens: s.registry.List()})
	})
}

func (s *Server) handleBalances() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAddress := r.URL.Query().Get("userAddress")
		if userAddress == "" {
			writeError(w, http.StatusBadRequest, "userAddress query parameter is required")
			return
		}

		balances := make(map[string]string, len(s.registry.List()))
		for _, t := range s.registry.List() {
			bal, err := s.ledger.Balance(r.Context(), userAddress, t)
			if err != nil {
				s.logger.Error("balance lookup failed", "token", t.Symbol, "error", err)
				writeError(w, http.StatusBadGateway, "failed to read balances from ledger")
				return
			}
			balances[t.Address] = bal.StringFixed(t.Decimals)
		}

		writeJSON(w, http.StatusOK, types.BalancesResponse{Balances: balances})
	})
}

func (s *Server) handleRequestQuote() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.QuoteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.TokenInAddress == "" || req.TokenOutAddress == "" || req.AmountIn == "" {
			writeError(w, http.StatusBadRequest, "tokenInAddress, tokenOutAddress and amountIn are required")
			return
		}

		tokenIn, err := s.registry.Resolve(req.TokenInAddress)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		tokenOut, err := s.registry.Resolve(req.TokenOutAddress)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		q, err := s.cache.Request(tokenIn.Address, tokenOut.Address, req.AmountIn)
		if err != nil {
			s.writeQuoteError(w, err)
			return
		}
		s.metrics.QuoteBuilt()
		writeJSON(w, http.StatusOK, types.QuoteResponse{Quote: *q})
	})
}

func (s *Server) handleRefreshQuote() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.RefreshRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.QuoteID == "" {
			writeError(w, http.StatusBadRequest, "quoteId is required")
			return
		}

		q, err := s.cache.Refresh(req.QuoteID)
		if err != nil {
			if errors.Is(err, quote.ErrQuoteNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			s.writeQuoteError(w, err)
			return
		}
		s.metrics.QuoteRefreshed()
		writeJSON(w, http.StatusOK, types.QuoteResponse{Quote: *q})
	})
}

func (s *Server) handleQuoteValidity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("quoteId")
		if id == "" {
			writeError(w, http.StatusBadRequest, "quoteId query parameter is required")
			return
		}

		q, remaining, ok := s.cache.Validity(id)
		if !ok || remaining <= 0 {
			s.metrics.QuoteExpired()
			writeJSON(w, http.StatusOK, types.ValidityResponse{IsValid: false, Quote: q})
			return
		}

		writeJSON(w, http.StatusOK, types.ValidityResponse{
			IsValid:       true,
			Quote:         q,
			TimeRemaining: remaining.Milliseconds(),
		})
	})
}

func (s *Server) handleExecuteSwap() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.SwapRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.QuoteID == "" || req.UserAddress == "" {
			writeError(w, http.StatusBadRequest, "quoteId and userAddress are required")
			return
		}

		slippage := swap.DefaultSlippagePercent
		if req.SlippageTolerance != nil {
			slippage = decimal.NewFromFloat(*req.SlippageTolerance)
			if slippage.IsNegative() || slippage.GreaterThanOrEqual(decimal.NewFromInt(100)) {
				writeError(w, http.StatusBadRequest, "slippageTolerance must be in [0, 100)")
				return
			}
		}

		tx, err := s.executor.Execute(r.Context(), req.QuoteID, req.UserAddress, slippage)
		if err != nil {
			switch {
			case errors.Is(err, quote.ErrQuoteExpired):
				s.metrics.QuoteExpired()
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, quote.ErrQuoteConsumed):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				s.logger.Error("swap execution failed", "quoteId", req.QuoteID, "error", err)
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, types.TransactionResponse{Transaction: *tx})
	})
}

func (s *Server) handleListTransactions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.TransactionsResponse{Transactions: s.store.List()})
	})
}

func (s *Server) handleGetTransaction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tx, err := s.store.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.TransactionResponse{Transaction: *tx})
	})
}

func (s *Server) handleVaultPosition() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.scanner == nil {
			writeError(w, http.StatusServiceUnavailable, "vault scanning is not available in this mode")
			return
		}
		userAddress := r.URL.Query().Get("userAddress")
		if userAddress == "" {
			writeError(w, http.StatusBadRequest, "userAddress query parameter is required")
			return
		}

		position, err := s.scanner.Scan(r.Context(), r.PathValue("address"), userAddress)
		if err != nil {
			s.logger.Error("vault scan failed", "vault", r.PathValue("address"), "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.VaultResponse{Vault: *position})
	})
}

func (s *Server) handleHealth() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// writeQuoteError maps quote-building failures to status codes. Bad inputs
// and unroutable pairs are the caller's fault; everything else is ours.
func (s *Server) writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quote.ErrInvalidToken),
		errors.Is(err, quote.ErrInvalidAmount),
		errors.Is(err, route.ErrNoRoute):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("quote build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build quote")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
