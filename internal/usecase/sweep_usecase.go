package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrSweepInProgress = errors.New("sweep already in progress")
	errQuoteFailed     = errors.New("quote source returned no price")
)

// SweepUsecase walks all active alerts in one strictly sequential pass:
// fetch a quote, evaluate, notify-and-deactivate on trigger, then pause a
// fixed delay before the next item so the quote source's implicit rate
// limit is respected. A pass over K alerts therefore takes at least
// K x delay of wall time.
type SweepUsecase struct {
	users    domain.UserRepository
	alerts   domain.AlertRepository
	prices   *PriceUsecase
	engine   *AlertUsecase
	notifier domain.Notifier
	logger   *zap.Logger
	delay    time.Duration

	running atomic.Bool
}

func NewSweepUsecase(
	users domain.UserRepository,
	alerts domain.AlertRepository,
	prices *PriceUsecase,
	engine *AlertUsecase,
	notifier domain.Notifier,
	delay time.Duration,
	logger *zap.Logger,
) *SweepUsecase {
	return &SweepUsecase{
		users:    users,
		alerts:   alerts,
		prices:   prices,
		engine:   engine,
		notifier: notifier,
		delay:    delay,
		logger:   logger,
	}
}

// Run executes one sweep. Overlapping runs are rejected outright; there is
// no cross-instance lock, so schedules must not fan out one trigger to
// several replicas.
func (s *SweepUsecase) Run(ctx context.Context) (domain.SweepReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return domain.SweepReport{}, ErrSweepInProgress
	}
	defer s.running.Store(false)

	start := time.Now()
	s.logger.Info("sweep starting")

	if deleted, err := s.prices.CleanupExpired(ctx); err != nil {
		s.logger.Warn("cache cleanup failed", zap.Error(err))
	} else if deleted > 0 {
		s.logger.Info("expired cache entries removed", zap.Int64("count", deleted))
	}

	alerts, err := s.alerts.ListActive(ctx)
	if err != nil {
		return domain.SweepReport{}, err
	}

	report := domain.SweepReport{}
	for _, alert := range alerts {
		report.Processed++

		triggered, err := s.processAlert(ctx, &alert)
		if err != nil {
			report.Errors++
			s.logger.Warn("alert sweep item failed", zap.Uint("alert_id", alert.ID), zap.Error(err))
		} else if triggered {
			report.Triggered++
		}

		// Unconditional pause, even after a failure.
		if err := sleepCtx(ctx, s.delay); err != nil {
			return report, err
		}
	}

	s.logger.Info(
		"sweep complete",
		zap.Int("processed", report.Processed),
		zap.Int("triggered", report.Triggered),
		zap.Int("errors", report.Errors),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

// processAlert evaluates one alert against a fresh quote. A quote failure
// leaves current_price stale; the alert is retried on the next sweep.
func (s *SweepUsecase) processAlert(ctx context.Context, alert *domain.PriceAlert) (bool, error) {
	result, err := s.prices.GetPrice(ctx, alert.ItemName, domain.AlertCurrency)
	if err != nil {
		return false, err
	}
	if !result.Success {
		return false, errQuoteFailed
	}

	eval := s.engine.Evaluate(alert, result.Price)
	if !eval.Triggered {
		if err := s.alerts.UpdateCurrentPrice(ctx, alert.ID, result.Price); err != nil {
			return false, err
		}
		return false, nil
	}

	user, err := s.users.GetByID(ctx, alert.UserID)
	if err != nil {
		return false, err
	}

	if user.Notifications {
		text := fmt.Sprintf(
			"🔔 Price Alert Triggered!\n\nItem: %s\nCurrent Price: $%s\nAlert Reason: %s\n\nThe price has reached your target! 🎉",
			alert.ItemName, result.Price, eval.Reason,
		)
		if err := s.notifier.Notify(user.TelegramUserID, text); err != nil {
			s.logger.Warn("trigger notification failed", zap.Uint("alert_id", alert.ID), zap.Error(err))
		}
	}

	// Conditional deactivation: zero rows means a concurrent run already
	// took this trigger, so it is not counted again.
	ok, err := s.alerts.Deactivate(ctx, alert.ID)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
