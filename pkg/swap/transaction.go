package swap

import (
	"time"

	"flowswap/pkg/quote"
)

// Status is the lifecycle state of a swap transaction. A transaction is
// created Pending and transitions exactly once to Confirmed or Failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Transaction is the record of one swap execution. Quote is a frozen copy of
// the quote the swap was executed against; later cache evictions do not
// touch it.
type Transaction struct {
	ID             string      `json:"id"`
	SettlementHash string      `json:"settlementHash,omitempty"`
	Status         Status      `json:"status"`
	Quote          quote.Quote `json:"quote"`
	CreatedAt      time.Time   `json:"createdAt"`
	ErrorMessage   string      `json:"errorMessage,omitempty"`
}
