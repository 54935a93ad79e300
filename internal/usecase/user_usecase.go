package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
)

var ErrUserNotRegistered = errors.New("user not registered")

// rateWindow is the rolling window for price-check quotas.
const rateWindow = 60 * time.Second

type UserUsecase struct {
	users domain.UserRepository
	now   func() time.Time
}

func NewUserUsecase(users domain.UserRepository) *UserUsecase {
	return &UserUsecase{users: users, now: time.Now}
}

// Register creates the user on first contact with free-tier defaults and
// refreshes the Telegram identity fields on every later call.
func (u *UserUsecase) Register(ctx context.Context, telegramUserID int64, username, firstName, lastName string) (*domain.User, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err == nil {
		if err := u.users.UpdateIdentity(ctx, telegramUserID, username, firstName, lastName); err != nil {
			return nil, err
		}
		user.Username = username
		user.FirstName = firstName
		user.LastName = lastName
		return user, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	limits := domain.LimitsForTier(domain.DefaultTier)
	newUser := &domain.User{
		TelegramUserID:       telegramUserID,
		Username:             username,
		FirstName:            firstName,
		LastName:             lastName,
		Currency:             "USD",
		Notifications:        true,
		Tier:                 domain.DefaultTier,
		MaxAlerts:            limits.MaxAlerts,
		PriceChecksPerMinute: limits.PriceChecksPerMinute,
		LastPriceCheck:       u.now(),
	}
	if err := u.users.Create(ctx, newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

func (u *UserUsecase) Get(ctx context.Context, telegramUserID int64) (*domain.User, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}
	return user, nil
}

func (u *UserUsecase) SetCurrency(ctx context.Context, telegramUserID int64, currency string) error {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if err := u.users.UpdateCurrency(ctx, telegramUserID, code); err != nil {
		if err == domain.ErrNotFound {
			return ErrUserNotRegistered
		}
		return err
	}
	return nil
}

// RateLimitResult reports whether a price check may proceed. ResetTime is
// set only when the check was denied inside a live window.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// CanCheck applies the rolling per-minute quota. A missing user record
// fails closed.
func (u *UserUsecase) CanCheck(ctx context.Context, telegramUserID int64) (RateLimitResult, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return RateLimitResult{}, nil
		}
		return RateLimitResult{}, err
	}

	limit := checkLimit(user)
	now := u.now()

	// Window rolled over: the next check starts a fresh minute.
	if now.Sub(user.LastPriceCheck) >= rateWindow {
		return RateLimitResult{Allowed: true, Remaining: limit - 1}, nil
	}

	if user.PriceChecksThisMinute >= limit {
		return RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetTime: user.LastPriceCheck.Add(rateWindow),
		}, nil
	}

	return RateLimitResult{Allowed: true, Remaining: limit - user.PriceChecksThisMinute - 1}, nil
}

// IncrementCheck records one price check. A rolled-over window resets the
// counter to 1 and re-anchors it; inside the window the counter grows
// without moving the anchor, so the window cannot slide forward forever.
func (u *UserUsecase) IncrementCheck(ctx context.Context, telegramUserID int64) error {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return ErrUserNotRegistered
		}
		return err
	}

	now := u.now()
	usage := domain.Usage{
		AlertsCreated:  user.AlertsCreated,
		LastPriceCheck: user.LastPriceCheck,
	}
	if now.Sub(user.LastPriceCheck) >= rateWindow {
		usage.PriceChecksThisMinute = 1
		usage.LastPriceCheck = now
	} else {
		usage.PriceChecksThisMinute = user.PriceChecksThisMinute + 1
	}

	return u.users.UpdateUsage(ctx, telegramUserID, usage)
}

func checkLimit(user *domain.User) int {
	if user.PriceChecksPerMinute > 0 {
		return user.PriceChecksPerMinute
	}
	return domain.LimitsForTier(user.Tier).PriceChecksPerMinute
}
