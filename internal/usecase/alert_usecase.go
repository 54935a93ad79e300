package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAlertInput = errors.New("invalid alert input")
	ErrAlertLimitReached = errors.New("alert limit reached")
	ErrAlertNotFound     = errors.New("alert not found")
)

var percentagePattern = regexp.MustCompile(`^([+-])(\d+(?:\.\d+)?)%$`)

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

type AlertUsecase struct {
	users  domain.UserRepository
	alerts domain.AlertRepository
	now    func() time.Time
}

func NewAlertUsecase(users domain.UserRepository, alerts domain.AlertRepository) *AlertUsecase {
	return &AlertUsecase{users: users, alerts: alerts, now: time.Now}
}

// ParseAlertInput understands three shapes: "-10%" (percentage drop),
// "+20%" (percentage increase) and "50" (absolute target). For percentage
// alerts the base price is frozen from the price observed right now and
// the target is derived from it once; neither is ever recomputed.
func ParseAlertInput(input string, currentPrice decimal.Decimal) (*domain.AlertSpec, error) {
	input = strings.TrimSpace(input)

	if match := percentagePattern.FindStringSubmatch(input); match != nil {
		threshold, err := decimal.NewFromString(match[2])
		if err != nil || !threshold.IsPositive() {
			return nil, ErrInvalidAlertInput
		}
		fraction := threshold.Div(oneHundred)
		switch match[1] {
		case "-":
			return &domain.AlertSpec{
				Type:                domain.AlertPercentageDrop,
				TargetPrice:         currentPrice.Mul(one.Sub(fraction)),
				PercentageThreshold: threshold,
				BasePrice:           currentPrice,
			}, nil
		default:
			return &domain.AlertSpec{
				Type:                domain.AlertPercentageIncrease,
				TargetPrice:         currentPrice.Mul(one.Add(fraction)),
				PercentageThreshold: threshold,
				BasePrice:           currentPrice,
			}, nil
		}
	}

	target, err := decimal.NewFromString(input)
	if err != nil || !target.IsPositive() {
		return nil, ErrInvalidAlertInput
	}
	return &domain.AlertSpec{Type: domain.AlertAbsolute, TargetPrice: target}, nil
}

// Create persists an alert for the user, enforcing the tier's active-alert
// quota and bumping the lifetime alerts_created counter.
func (u *AlertUsecase) Create(ctx context.Context, telegramUserID int64, itemName string, spec *domain.AlertSpec) (*domain.PriceAlert, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	active, err := u.alerts.CountActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if active >= int64(alertLimit(user)) {
		return nil, ErrAlertLimitReached
	}

	alert := &domain.PriceAlert{
		UserID:              user.ID,
		ItemName:            itemName,
		Type:                spec.Type,
		TargetPrice:         spec.TargetPrice,
		PercentageThreshold: spec.PercentageThreshold,
		BasePrice:           spec.BasePrice,
		IsActive:            true,
	}
	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	usage := domain.Usage{
		AlertsCreated:         user.AlertsCreated + 1,
		PriceChecksThisMinute: user.PriceChecksThisMinute,
		LastPriceCheck:        user.LastPriceCheck,
	}
	if err := u.users.UpdateUsage(ctx, telegramUserID, usage); err != nil {
		return nil, err
	}

	return alert, nil
}

// Evaluate decides whether an alert fires against the given price.
func (u *AlertUsecase) Evaluate(alert *domain.PriceAlert, currentPrice decimal.Decimal) domain.Evaluation {
	switch alert.Type {
	case domain.AlertAbsolute:
		if currentPrice.LessThanOrEqual(alert.TargetPrice) {
			return domain.Evaluation{
				Triggered: true,
				Reason:    fmt.Sprintf("Price dropped to $%s (target: $%s)", currentPrice, alert.TargetPrice),
			}
		}
	case domain.AlertPercentageDrop:
		if alert.BasePrice.IsPositive() && alert.PercentageThreshold.IsPositive() {
			dropPct := alert.BasePrice.Sub(currentPrice).Div(alert.BasePrice).Mul(oneHundred)
			if dropPct.GreaterThanOrEqual(alert.PercentageThreshold) {
				return domain.Evaluation{
					Triggered: true,
					Reason: fmt.Sprintf("Price dropped %s%% (threshold: %s%%)",
						dropPct.Round(1), alert.PercentageThreshold),
				}
			}
		}
	case domain.AlertPercentageIncrease:
		if alert.BasePrice.IsPositive() && alert.PercentageThreshold.IsPositive() {
			incPct := currentPrice.Sub(alert.BasePrice).Div(alert.BasePrice).Mul(oneHundred)
			if incPct.GreaterThanOrEqual(alert.PercentageThreshold) {
				return domain.Evaluation{
					Triggered: true,
					Reason: fmt.Sprintf("Price increased %s%% (threshold: %s%%)",
						incPct.Round(1), alert.PercentageThreshold),
				}
			}
		}
	}
	return domain.Evaluation{}
}

func (u *AlertUsecase) ListActive(ctx context.Context, telegramUserID int64) ([]domain.PriceAlert, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}
	return u.alerts.ListActiveByUser(ctx, user.ID)
}

func (u *AlertUsecase) ListAllActive(ctx context.Context) ([]domain.PriceAlert, error) {
	return u.alerts.ListActive(ctx)
}

// Deactivate is idempotent: deactivating an already-inactive alert reports
// ErrAlertNotFound without touching anything.
func (u *AlertUsecase) Deactivate(ctx context.Context, alertID uint) error {
	ok, err := u.alerts.Deactivate(ctx, alertID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlertNotFound
	}
	return nil
}

func alertLimit(user *domain.User) int {
	if user.MaxAlerts > 0 {
		return user.MaxAlerts
	}
	return domain.LimitsForTier(user.Tier).MaxAlerts
}
