package db

import (
	"context"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.PriceAlert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	alert.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *AlertRepository) ListActiveByUser(ctx context.Context, userID uint) ([]domain.PriceAlert, error) {
	var models []priceAlertModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]domain.PriceAlert, error) {
	var models []priceAlertModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&priceAlertModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// Deactivate flips is_active only when still true. The conditional update
// keeps the trigger path idempotent across overlapping sweep runs.
func (r *AlertRepository) Deactivate(ctx context.Context, alertID uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&priceAlertModel{}).
		Where("id = ? AND is_active = ?", alertID, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AlertRepository) UpdateCurrentPrice(ctx context.Context, alertID uint, price decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&priceAlertModel{}).
		Where("id = ?", alertID).
		Update("current_price", price).Error
}

func mapAlertsToDomain(models []priceAlertModel) []domain.PriceAlert {
	alerts := make([]domain.PriceAlert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, *mapAlertToDomain(model))
	}
	return alerts
}

func mapAlertToDomain(model priceAlertModel) *domain.PriceAlert {
	var deleted *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deleted = &t
	}
	return &domain.PriceAlert{
		ID:                  model.ID,
		UserID:              model.UserID,
		ItemName:            model.ItemName,
		Type:                domain.AlertType(model.AlertType),
		TargetPrice:         model.TargetPrice,
		PercentageThreshold: model.PercentageThreshold,
		BasePrice:           model.BasePrice,
		CurrentPrice:        model.CurrentPrice,
		IsActive:            model.IsActive,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
		DeletedAt:           deleted,
	}
}

func mapAlertToModel(alert domain.PriceAlert) priceAlertModel {
	return priceAlertModel{
		ID:                  alert.ID,
		UserID:              alert.UserID,
		ItemName:            alert.ItemName,
		AlertType:           string(alert.Type),
		TargetPrice:         alert.TargetPrice,
		PercentageThreshold: alert.PercentageThreshold,
		BasePrice:           alert.BasePrice,
		CurrentPrice:        alert.CurrentPrice,
		IsActive:            alert.IsActive,
		CreatedAt:           alert.CreatedAt,
		UpdatedAt:           alert.UpdatedAt,
	}
}
