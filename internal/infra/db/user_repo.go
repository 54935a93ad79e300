package db

import (
	"context"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramUserID int64) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).Where("telegram_user_id = ?", telegramUserID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := mapUserToModel(*user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) UpdateIdentity(ctx context.Context, telegramUserID int64, username, firstName, lastName string) error {
	result := r.db.WithContext(ctx).Model(&userModel{}).
		Where("telegram_user_id = ?", telegramUserID).
		Updates(map[string]interface{}{
			"username":   username,
			"first_name": firstName,
			"last_name":  lastName,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateCurrency(ctx context.Context, telegramUserID int64, currency string) error {
	result := r.db.WithContext(ctx).Model(&userModel{}).
		Where("telegram_user_id = ?", telegramUserID).
		Update("currency", currency)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateUsage(ctx context.Context, telegramUserID int64, usage domain.Usage) error {
	result := r.db.WithContext(ctx).Model(&userModel{}).
		Where("telegram_user_id = ?", telegramUserID).
		Updates(map[string]interface{}{
			"alerts_created":           usage.AlertsCreated,
			"price_checks_this_minute": usage.PriceChecksThisMinute,
			"last_price_check":         usage.LastPriceCheck,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapUserToDomain(model userModel) *domain.User {
	var deleted *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deleted = &t
	}
	return &domain.User{
		ID:                    model.ID,
		TelegramUserID:        model.TelegramUserID,
		Username:              model.Username,
		FirstName:             model.FirstName,
		LastName:              model.LastName,
		Currency:              model.Currency,
		Notifications:         model.Notifications,
		Tier:                  domain.Tier(model.Tier),
		MaxAlerts:             model.MaxAlerts,
		PriceChecksPerMinute:  model.PriceChecksPerMinute,
		AlertsCreated:         model.AlertsCreated,
		PriceChecksThisMinute: model.PriceChecksThisMinute,
		LastPriceCheck:        model.LastPriceCheck,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
		DeletedAt:             deleted,
	}
}

func mapUserToModel(user domain.User) userModel {
	return userModel{
		ID:                    user.ID,
		TelegramUserID:        user.TelegramUserID,
		Username:              user.Username,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		Currency:              user.Currency,
		Notifications:         user.Notifications,
		Tier:                  string(user.Tier),
		MaxAlerts:             user.MaxAlerts,
		PriceChecksPerMinute:  user.PriceChecksPerMinute,
		AlertsCreated:         user.AlertsCreated,
		PriceChecksThisMinute: user.PriceChecksThisMinute,
		LastPriceCheck:        user.LastPriceCheck,
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
	}
}
