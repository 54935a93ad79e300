package db

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userModel struct {
	ID             uint   `gorm:"primaryKey"`
	TelegramUserID int64  `gorm:"uniqueIndex;not null"`
	Username       string `gorm:""`
	FirstName      string `gorm:""`
	LastName       string `gorm:""`

	Currency      string `gorm:"not null;default:USD"`
	Notifications bool   `gorm:"not null;default:true"`

	Tier                 string `gorm:"not null;default:free"`
	MaxAlerts            int    `gorm:"not null"`
	PriceChecksPerMinute int    `gorm:"not null"`

	AlertsCreated         int `gorm:"not null;default:0"`
	PriceChecksThisMinute int `gorm:"not null;default:0"`
	LastPriceCheck        time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type priceAlertModel struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index:idx_alerts_user_active,priority:1;not null"`
	ItemName string `gorm:"not null"`

	AlertType           string          `gorm:"not null"`
	TargetPrice         decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	PercentageThreshold decimal.Decimal `gorm:"type:numeric(7,3)"`
	BasePrice           decimal.Decimal `gorm:"type:numeric(12,4)"`
	CurrentPrice        decimal.Decimal `gorm:"type:numeric(12,4)"`

	IsActive bool `gorm:"index:idx_alerts_user_active,priority:2;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type priceCacheModel struct {
	ID          uint            `gorm:"primaryKey"`
	ItemName    string          `gorm:"uniqueIndex;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,4)"`
	Currency    string          `gorm:"not null"`
	Volume      int64           `gorm:""`
	MedianPrice decimal.Decimal `gorm:"type:numeric(12,4)"`
	Success     bool            `gorm:"not null"`
	CachedAt    time.Time       `gorm:"not null"`
	ExpiresAt   time.Time       `gorm:"index;not null"`
}

type priceHistoryModel struct {
	ID          uint            `gorm:"primaryKey"`
	ItemName    string          `gorm:"index;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,4)"`
	Currency    string          `gorm:"not null"`
	Volume      int64           `gorm:""`
	MedianPrice decimal.Decimal `gorm:"type:numeric(12,4)"`
	Success     bool            `gorm:"not null"`
	RecordedAt  time.Time       `gorm:"index;not null"`
}

type itemModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;not null"`
	WeaponType string `gorm:"index;not null"`
	WeaponName string `gorm:"index;not null"`
	SkinName   string `gorm:""`
	Condition  string `gorm:""`
	Category   string `gorm:""`
	CreatedAt  time.Time
}

func (userModel) TableName() string         { return "users" }
func (priceAlertModel) TableName() string   { return "price_alerts" }
func (priceCacheModel) TableName() string   { return "price_cache" }
func (priceHistoryModel) TableName() string { return "price_history" }
func (itemModel) TableName() string         { return "items" }
