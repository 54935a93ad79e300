package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CacheTTL bounds how long a live cache entry amortizes quote lookups.
const CacheTTL = 15 * time.Minute

var ErrItemNotFound = errors.New("item not found on market")

// Quote is a point-in-time price observation from the external market
// source. Success false means the source answered but had no price.
type Quote struct {
	Success     bool
	LowestPrice decimal.Decimal
	MedianPrice decimal.Decimal
	Volume      int64
	Currency    string
}

// QuoteClient fetches a single live quote. Timeouts and retries are its
// own concern.
type QuoteClient interface {
	Quote(ctx context.Context, itemName string, currency string, appID int) (*Quote, error)
}

// PriceCacheEntry is the single live quote per item. Overwritten on every
// fresh fetch.
type PriceCacheEntry struct {
	ID          uint
	ItemName    string
	Price       decimal.Decimal
	Currency    string
	Volume      int64
	MedianPrice decimal.Decimal
	Success     bool
	CachedAt    time.Time
	ExpiresAt   time.Time
}

func (e *PriceCacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// PriceHistoryEntry is one append-only row per fetch, never overwritten.
type PriceHistoryEntry struct {
	ID          uint
	ItemName    string
	Price       decimal.Decimal
	Currency    string
	Volume      int64
	MedianPrice decimal.Decimal
	Success     bool
	RecordedAt  time.Time
}

// Notifier delivers a user-facing message. Fire and forget: failures are
// logged by callers, never retried.
type Notifier interface {
	Notify(telegramUserID int64, text string) error
}

// SweepReport aggregates one full pass over all active alerts.
type SweepReport struct {
	Processed int
	Triggered int
	Errors    int
}
