package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramUserID int64) (*User, error)
	GetByID(ctx context.Context, userID uint) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateIdentity(ctx context.Context, telegramUserID int64, username, firstName, lastName string) error
	UpdateCurrency(ctx context.Context, telegramUserID int64, currency string) error
	UpdateUsage(ctx context.Context, telegramUserID int64, usage Usage) error
}

type AlertRepository interface {
	Create(ctx context.Context, alert *PriceAlert) error
	ListActiveByUser(ctx context.Context, userID uint) ([]PriceAlert, error)
	ListActive(ctx context.Context) ([]PriceAlert, error)
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	// Deactivate flips is_active conditionally; returns false when the
	// alert was already inactive, so overlapping sweeps cannot
	// double-count a trigger.
	Deactivate(ctx context.Context, alertID uint) (bool, error)
	UpdateCurrentPrice(ctx context.Context, alertID uint, price decimal.Decimal) error
}

type PriceCacheRepository interface {
	GetLive(ctx context.Context, itemName string) (*PriceCacheEntry, error)
	UpsertLive(ctx context.Context, entry *PriceCacheEntry) error
	AppendHistory(ctx context.Context, entry *PriceHistoryEntry) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	History(ctx context.Context, itemName string, since time.Time) ([]PriceHistoryEntry, error)
}

type CatalogRepository interface {
	GetByName(ctx context.Context, name string) (*Item, error)
	WeaponTypes(ctx context.Context) ([]string, error)
	WeaponNames(ctx context.Context, weaponType string) ([]string, error)
	SkinNames(ctx context.Context, weaponName string) ([]string, error)
	SimilarNames(ctx context.Context, query string, limit int) ([]string, error)
	Upsert(ctx context.Context, items []Item) error
}
