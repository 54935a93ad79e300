package db

import (
	"context"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriceCacheRepository struct {
	db *gorm.DB
}

func NewPriceCacheRepository(db *gorm.DB) *PriceCacheRepository {
	return &PriceCacheRepository{db: db}
}

func (r *PriceCacheRepository) GetLive(ctx context.Context, itemName string) (*domain.PriceCacheEntry, error) {
	var model priceCacheModel
	if err := r.db.WithContext(ctx).Where("item_name = ?", itemName).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.PriceCacheEntry{
		ID:          model.ID,
		ItemName:    model.ItemName,
		Price:       model.Price,
		Currency:    model.Currency,
		Volume:      model.Volume,
		MedianPrice: model.MedianPrice,
		Success:     model.Success,
		CachedAt:    model.CachedAt,
		ExpiresAt:   model.ExpiresAt,
	}, nil
}

// UpsertLive keeps a single live row per item keyed on item_name.
func (r *PriceCacheRepository) UpsertLive(ctx context.Context, entry *domain.PriceCacheEntry) error {
	model := priceCacheModel{
		ItemName:    entry.ItemName,
		Price:       entry.Price,
		Currency:    entry.Currency,
		Volume:      entry.Volume,
		MedianPrice: entry.MedianPrice,
		Success:     entry.Success,
		CachedAt:    entry.CachedAt,
		ExpiresAt:   entry.ExpiresAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price", "currency", "volume", "median_price", "success", "cached_at", "expires_at",
		}),
	}).Create(&model).Error
}

func (r *PriceCacheRepository) AppendHistory(ctx context.Context, entry *domain.PriceHistoryEntry) error {
	model := priceHistoryModel{
		ItemName:    entry.ItemName,
		Price:       entry.Price,
		Currency:    entry.Currency,
		Volume:      entry.Volume,
		MedianPrice: entry.MedianPrice,
		Success:     entry.Success,
		RecordedAt:  entry.RecordedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *PriceCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&priceCacheModel{})
	return result.RowsAffected, result.Error
}

func (r *PriceCacheRepository) History(ctx context.Context, itemName string, since time.Time) ([]domain.PriceHistoryEntry, error) {
	var models []priceHistoryModel
	err := r.db.WithContext(ctx).
		Where("item_name = ? AND recorded_at >= ?", itemName, since).
		Order("recorded_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entries := make([]domain.PriceHistoryEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, domain.PriceHistoryEntry{
			ID:          model.ID,
			ItemName:    model.ItemName,
			Price:       model.Price,
			Currency:    model.Currency,
			Volume:      model.Volume,
			MedianPrice: model.MedianPrice,
			Success:     model.Success,
			RecordedAt:  model.RecordedAt,
		})
	}
	return entries, nil
}
