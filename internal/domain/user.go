package domain

import "time"

// Tier is a subscription level bounding rate-limit and max-alert quotas.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

const DefaultTier = TierFree

type TierLimits struct {
	MaxAlerts            int
	PriceChecksPerMinute int
}

var tierLimits = map[Tier]TierLimits{
	TierFree:    {MaxAlerts: 1, PriceChecksPerMinute: 10},
	TierPremium: {MaxAlerts: 10, PriceChecksPerMinute: 30},
	TierPro:     {MaxAlerts: 20, PriceChecksPerMinute: 60},
}

var tierDisplayNames = map[Tier]string{
	TierFree:    "Free",
	TierPremium: "Premium",
	TierPro:     "Pro",
}

// LimitsForTier falls back to the free tier for unknown values.
func LimitsForTier(tier Tier) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[DefaultTier]
}

func (t Tier) DisplayName() string {
	if name, ok := tierDisplayNames[t]; ok {
		return name
	}
	return tierDisplayNames[DefaultTier]
}

type User struct {
	ID             uint
	TelegramUserID int64
	Username       string
	FirstName      string
	LastName       string

	// Preferences.
	Currency      string
	Notifications bool

	// Limits, snapshotted from the tier at registration.
	Tier                 Tier
	MaxAlerts            int
	PriceChecksPerMinute int

	// Usage counters mutated by the rate limiter and alert engine.
	AlertsCreated         int
	PriceChecksThisMinute int
	LastPriceCheck        time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Usage is the mutable usage slice of a user record, written back as one
// update by UserRepository.UpdateUsage.
type Usage struct {
	AlertsCreated         int
	PriceChecksThisMinute int
	LastPriceCheck        time.Time
}
