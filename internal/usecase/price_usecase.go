package usecase

import (
	"context"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceResult is one quote observation, possibly served from the live
// cache.
type PriceResult struct {
	ItemName    string
	Price       decimal.Decimal
	MedianPrice decimal.Decimal
	Volume      int64
	Currency    string
	Success     bool
	Cached      bool
}

type PriceUsecase struct {
	cache  domain.PriceCacheRepository
	quotes domain.QuoteClient
	logger *zap.Logger
	appID  int
	now    func() time.Time
}

func NewPriceUsecase(cache domain.PriceCacheRepository, quotes domain.QuoteClient, appID int, logger *zap.Logger) *PriceUsecase {
	return &PriceUsecase{cache: cache, quotes: quotes, appID: appID, logger: logger, now: time.Now}
}

// GetPrice serves the live cache entry when still valid, otherwise fetches
// a fresh quote and memoizes it for the cache TTL. Failed quote attempts
// are memoized too, so a broken lookup is not hammered for 15 minutes.
func (u *PriceUsecase) GetPrice(ctx context.Context, itemName, currency string) (*PriceResult, error) {
	now := u.now()

	entry, err := u.cache.GetLive(ctx, itemName)
	if err == nil && !entry.Expired(now) {
		return &PriceResult{
			ItemName:    itemName,
			Price:       entry.Price,
			MedianPrice: entry.MedianPrice,
			Volume:      entry.Volume,
			Currency:    entry.Currency,
			Success:     entry.Success,
			Cached:      true,
		}, nil
	}
	if err != nil && err != domain.ErrNotFound {
		u.logger.Warn("price cache read failed", zap.String("item", itemName), zap.Error(err))
	}

	quote, err := u.quotes.Quote(ctx, itemName, currency, u.appID)
	if err != nil {
		return nil, err
	}

	u.memoize(ctx, itemName, quote, now)

	return &PriceResult{
		ItemName:    itemName,
		Price:       quote.LowestPrice,
		MedianPrice: quote.MedianPrice,
		Volume:      quote.Volume,
		Currency:    quote.Currency,
		Success:     quote.Success,
	}, nil
}

// memoize upserts the live entry and appends one history row. Persistence
// failures here do not fail the price check itself.
func (u *PriceUsecase) memoize(ctx context.Context, itemName string, quote *domain.Quote, now time.Time) {
	live := &domain.PriceCacheEntry{
		ItemName:    itemName,
		Price:       quote.LowestPrice,
		Currency:    quote.Currency,
		Volume:      quote.Volume,
		MedianPrice: quote.MedianPrice,
		Success:     quote.Success,
		CachedAt:    now,
		ExpiresAt:   now.Add(domain.CacheTTL),
	}
	if err := u.cache.UpsertLive(ctx, live); err != nil {
		u.logger.Warn("price cache write failed", zap.String("item", itemName), zap.Error(err))
	}

	history := &domain.PriceHistoryEntry{
		ItemName:    itemName,
		Price:       quote.LowestPrice,
		Currency:    quote.Currency,
		Volume:      quote.Volume,
		MedianPrice: quote.MedianPrice,
		Success:     quote.Success,
		RecordedAt:  now,
	}
	if err := u.cache.AppendHistory(ctx, history); err != nil {
		u.logger.Warn("price history append failed", zap.String("item", itemName), zap.Error(err))
	}
}

// CleanupExpired drops dead live entries; the history log is never touched.
func (u *PriceUsecase) CleanupExpired(ctx context.Context) (int64, error) {
	return u.cache.DeleteExpired(ctx, u.now())
}

// RecentHistory returns the fetch log for an item over the past day,
// newest first.
func (u *PriceUsecase) RecentHistory(ctx context.Context, itemName string) ([]domain.PriceHistoryEntry, error) {
	return u.cache.History(ctx, itemName, u.now().Add(-24*time.Hour))
}
