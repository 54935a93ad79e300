package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
)

func TestRegisterCreatesWithFreeTierDefaults(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase(repo)

	user, err := uc.Register(context.Background(), 42, "alice", "Alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Tier != domain.TierFree {
		t.Errorf("expected free tier, got %s", user.Tier)
	}
	if user.MaxAlerts != 1 {
		t.Errorf("expected 1 max alert, got %d", user.MaxAlerts)
	}
	if user.PriceChecksPerMinute != 10 {
		t.Errorf("expected 10 checks per minute, got %d", user.PriceChecksPerMinute)
	}
	if user.Currency != "USD" {
		t.Errorf("expected USD default currency, got %s", user.Currency)
	}
	if !user.Notifications {
		t.Error("expected notifications enabled by default")
	}
}

func TestRegisterRefreshesIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase(repo)

	first, err := uc.Register(context.Background(), 42, "alice", "Alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.Register(context.Background(), 42, "alice_new", "Alice", "Smith")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same user record, got IDs %d and %d", first.ID, second.ID)
	}
	if second.Username != "alice_new" || second.LastName != "Smith" {
		t.Errorf("identity not refreshed: %+v", second)
	}

	stored, err := repo.GetByTelegramID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Username != "alice_new" {
		t.Errorf("expected persisted username alice_new, got %s", stored.Username)
	}
}

func TestRateLimitWindow(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase(repo)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	uc.now = func() time.Time { return current }

	seedUser(repo, 42, domain.TierFree)

	// All 10 free-tier checks inside one minute go through.
	for i := 0; i < 10; i++ {
		result, err := uc.CanCheck(context.Background(), 42)
		if err != nil {
			t.Fatalf("check %d: unexpected error: %v", i+1, err)
		}
		if !result.Allowed {
			t.Fatalf("check %d: expected allowed", i+1)
		}
		if want := 10 - i - 1; result.Remaining != want {
			t.Errorf("check %d: expected %d remaining, got %d", i+1, want, result.Remaining)
		}
		if err := uc.IncrementCheck(context.Background(), 42); err != nil {
			t.Fatalf("check %d: unexpected error: %v", i+1, err)
		}
		current = current.Add(time.Second)
	}

	// The 11th within the same window is denied with a reset time.
	result, err := uc.CanCheck(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Error("expected 11th check to be denied")
	}
	if result.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", result.Remaining)
	}
	if want := base.Add(60 * time.Second); !result.ResetTime.Equal(want) {
		t.Errorf("expected reset at %v, got %v", want, result.ResetTime)
	}

	// Once the window rolls over the quota is fresh again.
	current = base.Add(61 * time.Second)
	result, err = uc.CanCheck(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Error("expected check allowed after window rollover")
	}
	if result.Remaining != 9 {
		t.Errorf("expected 9 remaining after rollover, got %d", result.Remaining)
	}
}

func TestIncrementCheckKeepsWindowAnchor(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase(repo)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	uc.now = func() time.Time { return current }

	seedUser(repo, 42, domain.TierFree)

	if err := uc.IncrementCheck(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, _ := repo.GetByTelegramID(context.Background(), 42)
	if !user.LastPriceCheck.Equal(base) {
		t.Fatalf("expected anchor at %v, got %v", base, user.LastPriceCheck)
	}

	// In-window increments must not move the anchor, otherwise a steady
	// trickle of checks would keep the window open forever.
	current = base.Add(30 * time.Second)
	if err := uc.IncrementCheck(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, _ = repo.GetByTelegramID(context.Background(), 42)
	if !user.LastPriceCheck.Equal(base) {
		t.Errorf("anchor moved on in-window increment: %v", user.LastPriceCheck)
	}
	if user.PriceChecksThisMinute != 2 {
		t.Errorf("expected counter 2, got %d", user.PriceChecksThisMinute)
	}

	// A rolled-over window resets the counter and re-anchors.
	current = base.Add(2 * time.Minute)
	if err := uc.IncrementCheck(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, _ = repo.GetByTelegramID(context.Background(), 42)
	if !user.LastPriceCheck.Equal(current) {
		t.Errorf("expected anchor re-set to %v, got %v", current, user.LastPriceCheck)
	}
	if user.PriceChecksThisMinute != 1 {
		t.Errorf("expected counter reset to 1, got %d", user.PriceChecksThisMinute)
	}
}

func TestCanCheckUnknownUserFailsClosed(t *testing.T) {
	uc := NewUserUsecase(newFakeUserRepo())

	result, err := uc.CanCheck(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Error("expected unknown user to be denied")
	}
}

func TestTierLimits(t *testing.T) {
	tests := []struct {
		tier      domain.Tier
		maxAlerts int
		perMinute int
		display   string
	}{
		{domain.TierFree, 1, 10, "Free"},
		{domain.TierPremium, 10, 30, "Premium"},
		{domain.TierPro, 20, 60, "Pro"},
		{domain.Tier("unknown"), 1, 10, "Free"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			limits := domain.LimitsForTier(tt.tier)
			if limits.MaxAlerts != tt.maxAlerts {
				t.Errorf("expected %d max alerts, got %d", tt.maxAlerts, limits.MaxAlerts)
			}
			if limits.PriceChecksPerMinute != tt.perMinute {
				t.Errorf("expected %d checks per minute, got %d", tt.perMinute, limits.PriceChecksPerMinute)
			}
			if name := tt.tier.DisplayName(); name != tt.display {
				t.Errorf("expected display name %s, got %s", tt.display, name)
			}
		})
	}
}
