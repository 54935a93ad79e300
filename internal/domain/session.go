package domain

import "time"

// Step is the wizard position; steps are strictly ordered and each
// selection advances exactly one step.
type Step string

const (
	StepWeaponType Step = "weapon_type"
	StepWeaponName Step = "weapon_name"
	StepSkinName   Step = "skin_name"
	StepCondition  Step = "condition"
	StepCategory   Step = "category"
	StepComplete   Step = "complete"
)

// SessionTTL is the idle time after which a search session is dropped.
const SessionTTL = 30 * time.Minute

// SearchSession accumulates wizard selections into a canonical item name.
// Lives only in process memory.
type SearchSession struct {
	TelegramUserID int64
	Step           Step

	WeaponType string
	WeaponName string
	SkinName   string
	Condition  string
	Category   string

	FinalName string
	ItemID    uint

	// Touched is refreshed on every mutation and drives idle expiry.
	Touched time.Time
}
