package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// optionKeyboard lays out choice buttons two per row with restart/cancel
// controls at the bottom.
func optionKeyboard(prefix string, options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)/2+2)
	for i := 0; i < len(options); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(options[i], prefix+options[i]),
		}
		if i+1 < len(options) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(options[i+1], prefix+options[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, controlRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func controlRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Start Over", cbSearchRestart),
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", cbSearchCancel),
	)
}

func retryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(controlRow())
}

func itemFoundKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Check Price", cbCheckPrice),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Search Another", cbSearchRestart),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", cbSearchCancel),
		),
	)
}

// alertButtonsKeyboard follows a price result and leads into alert
// creation.
func alertButtonsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📉 Drop", cbAlertDrop),
			tgbotapi.NewInlineKeyboardButtonData("📈 Increase", cbAlertIncrease),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Target", cbAlertTarget),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Search Another", cbSearchRestart),
		),
	)
}
