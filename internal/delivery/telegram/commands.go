package telegram

import (
	"regexp"
	"strings"
)

const HelpText = `🎮 Steam Skins Price Alert Bot

📋 Commands:
/start - register
/search - step-by-step item search
/alerts - list your active alerts
/history <item> - recent price observations
/profile - view your profile
/games - list supported games
/currency <code> - set your preferred currency
/help - show this help

💡 Usage:
- Send any item name to check its current price
- Use exact names like "AK-47 | Redline (Field-Tested)"

📊 Alert types (reply to a price result):
- "50" - alert when the price reaches $50
- "-10%" - alert when the price drops 10%
- "+20%" - alert when the price increases 20%`

// Callback data prefixes for the wizard keyboards.
const (
	cbWeaponType = "st:"
	cbWeaponName = "sn:"
	cbSkinName   = "ss:"
	cbCondition  = "sc:"
	cbCategory   = "sg:"

	cbSearchRestart = "search_restart"
	cbSearchCancel  = "search_cancel"
	cbCheckPrice    = "check_price"
	cbAlertDrop     = "alert_drop"
	cbAlertIncrease = "alert_increase"
	cbAlertTarget   = "alert_target"
)

// Alert prompt kinds, used for force-reply round trips.
const (
	promptDrop     = "Drop"
	promptIncrease = "Increase"
	promptTarget   = "Target"
)

var alertPromptPattern = regexp.MustCompile(`(Drop|Increase|Target) alert: Reply with .+ for (.+)$`)

// ParseAlertPrompt recovers the alert kind and item name from a previously
// sent force-reply prompt.
func ParseAlertPrompt(text string) (kind, itemName string, ok bool) {
	match := alertPromptPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return "", "", false
	}
	return match[1], strings.TrimSpace(match[2]), true
}

// ParseCallback splits wizard callback data into a prefix and value.
// Plain action buttons come back with an empty value.
func ParseCallback(data string) (prefix, value string) {
	for _, p := range []string{cbWeaponType, cbWeaponName, cbSkinName, cbCondition, cbCategory} {
		if strings.HasPrefix(data, p) {
			return p, strings.TrimPrefix(data, p)
		}
	}
	return data, ""
}

var alertInputShape = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?%?|\d+(?:\.\d+)?)$`)

// LooksLikeAlertInput reports whether free text is shaped like an alert
// request ("50", "-10%", "+20%") rather than an item name.
func LooksLikeAlertInput(text string) bool {
	return alertInputShape.MatchString(strings.TrimSpace(text))
}
