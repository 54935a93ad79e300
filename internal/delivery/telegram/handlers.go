package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"github.com/maksym-ppt/skins-price-alert/internal/infra/steam"
	"github.com/maksym-ppt/skins-price-alert/internal/usecase"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handlers struct {
	userUC   *usecase.UserUsecase
	alertUC  *usecase.AlertUsecase
	priceUC  *usecase.PriceUsecase
	searchUC *usecase.SearchUsecase
	logger   *zap.Logger
}

func NewHandlers(
	userUC *usecase.UserUsecase,
	alertUC *usecase.AlertUsecase,
	priceUC *usecase.PriceUsecase,
	searchUC *usecase.SearchUsecase,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{userUC: userUC, alertUC: alertUC, priceUC: priceUC, searchUC: searchUC, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(ctx, api, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update.Message)
		return
	}
	if update.Message.Text != "" {
		h.handleText(ctx, api, update.Message)
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	command := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID
	userID := msg.From.ID

	h.logger.Info(
		"telegram command received",
		zap.Int64("telegram_user_id", userID),
		zap.String("command", command),
	)

	switch command {
	case "start":
		user, err := h.userUC.Register(ctx, userID, msg.From.UserName, msg.From.FirstName, msg.From.LastName)
		if err != nil {
			h.logger.Warn("start command failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, "Failed to register. Please try again.")
			return
		}
		h.reply(api, chatID, fmt.Sprintf(
			"🎮 Welcome to Steam Skins Price Alert Bot!\n\n%s\n\n📊 Your limits (%s tier):\n• Price checks: %d/minute\n• Max alerts: %d",
			HelpText, user.Tier.DisplayName(), user.PriceChecksPerMinute, user.MaxAlerts,
		))
	case "help":
		h.reply(api, chatID, HelpText)
	case "search":
		h.startSearch(ctx, api, chatID, userID, 0)
	case "alerts":
		h.listAlerts(ctx, api, chatID, userID)
	case "history":
		h.showHistory(ctx, api, chatID, args)
	case "profile":
		h.showProfile(ctx, api, chatID, userID)
	case "games":
		var builder strings.Builder
		builder.WriteString("🎮 Supported games:\n\n")
		for name, id := range steam.Games {
			builder.WriteString(fmt.Sprintf("• %s (ID: %d)\n", name, id))
		}
		builder.WriteString("\n💡 Default game is Counter-Strike 2.")
		h.reply(api, chatID, builder.String())
	case "currency":
		h.setCurrency(ctx, api, chatID, userID, args)
	default:
		h.reply(api, chatID, "Unknown command.\n\n"+HelpText)
	}
}

func (h *Handlers) handleText(ctx context.Context, api *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	// Every interaction keeps the user record fresh.
	if _, err := h.userUC.Register(ctx, userID, msg.From.UserName, msg.From.FirstName, msg.From.LastName); err != nil {
		h.logger.Warn("auto-register failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
	}

	// Replies to one of our alert prompts carry a bare number.
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.Text != "" {
		if kind, itemName, ok := ParseAlertPrompt(msg.ReplyToMessage.Text); ok {
			h.handlePromptReply(ctx, api, chatID, userID, kind, itemName, text)
			return
		}
	}

	if LooksLikeAlertInput(text) {
		session := h.searchUC.Get(userID)
		if session != nil && session.FinalName != "" {
			h.createAlert(ctx, api, chatID, userID, session.FinalName, text)
			return
		}
		h.reply(api, chatID, "❗ Please check an item's price first, then reply with \"50\", \"-10%\" or \"+20%\".")
		return
	}

	h.directPriceCheck(ctx, api, chatID, userID, text)
}

func (h *Handlers) handleCallback(ctx context.Context, api *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery) {
	if query.From == nil || query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID

	// Always acknowledge so the client stops its spinner.
	if _, err := api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.Debug("callback ack failed", zap.Error(err))
	}

	prefix, value := ParseCallback(query.Data)
	switch prefix {
	case cbWeaponType:
		h.onWeaponType(ctx, api, chatID, messageID, userID, value)
	case cbWeaponName:
		h.onWeaponName(ctx, api, chatID, messageID, userID, value)
	case cbSkinName:
		h.onSkinName(ctx, api, chatID, messageID, userID, value)
	case cbCondition:
		h.onCondition(ctx, api, chatID, messageID, userID, value)
	case cbCategory:
		h.onCategory(ctx, api, chatID, messageID, userID, value)
	case cbSearchRestart:
		h.startSearch(ctx, api, chatID, userID, messageID)
	case cbSearchCancel:
		h.searchUC.Cancel(userID)
		h.edit(api, chatID, messageID, "❌ Search cancelled.\n\nUse /search to start over or send an item name directly.", nil)
	case cbCheckPrice:
		h.priceCheckFromSearch(ctx, api, chatID, messageID, userID)
	case cbAlertDrop:
		h.sendAlertPrompt(ctx, api, chatID, userID, promptDrop)
	case cbAlertIncrease:
		h.sendAlertPrompt(ctx, api, chatID, userID, promptIncrease)
	case cbAlertTarget:
		h.sendAlertPrompt(ctx, api, chatID, userID, promptTarget)
	default:
		h.logger.Warn("unknown callback", zap.String("data", query.Data))
	}
}

// Wizard steps.

func (h *Handlers) startSearch(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64, editMessageID int) {
	weaponTypes, err := h.searchUC.WeaponTypes(ctx)
	if err != nil {
		h.logger.Warn("weapon types lookup failed", zap.Error(err))
		h.reply(api, chatID, "Something went wrong. Please try again.")
		return
	}
	if len(weaponTypes) == 0 {
		h.reply(api, chatID, "❌ The item catalog is empty. Import items first.")
		return
	}

	h.searchUC.Start(userID)
	text := "🔍 Step-by-Step Item Search\n\nStep 1: Choose weapon type"
	keyboard := optionKeyboard(cbWeaponType, weaponTypes)
	if editMessageID != 0 {
		h.edit(api, chatID, editMessageID, text, &keyboard)
		return
	}
	h.replyWithKeyboard(api, chatID, text, keyboard)
}

func (h *Handlers) onWeaponType(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, messageID int, userID int64, weaponType string) {
	session, err := h.searchUC.SelectWeaponType(userID, weaponType)
	if err != nil {
		h.edit(api, chatID, messageID, h.sessionErrorMessage(err), nil)
		return
	}

	names, err := h.searchUC.WeaponNames(ctx, weaponType)
	if err != nil || len(names) == 0 {
		h.edit(api, chatID, messageID, "❌ No items found for this type.", ptr(retryKeyboard()))
		return
	}

	keyboard := optionKeyboard(cbWeaponName, names)
	h.edit(api, chatID, messageID, fmt.Sprintf(
		"🔍 Step-by-Step Item Search\n\nStep 2: Choose item name\n\nType: %s", session.WeaponType,
	), &keyboard)
}

func (h *Handlers) onWeaponName(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, messageID int, userID int64, weaponName string) {
	session, err := h.searchUC.SelectWeaponName(userID, weaponName)
	if err != nil {
		h.edit(api, chatID, messageID, h.sessionErrorMessage(err), nil)
		return
	}

	skins, err := h.searchUC.SkinNames(ctx, session.WeaponType, weaponName)
	if err != nil {
		h.edit(api, chatID, messageID, "Something went wrong. Please try again.", ptr(retryKeyboard()))
		return
	}

	if len(skins) == 0 {
		// Only base knives legitimately have no skins; skip straight to
		// the condition step.
		if strings.EqualFold(session.WeaponType, "knife") {
			if _, err := h.searchUC.SelectSkinName(userID, ""); err != nil {
				h.edit(api, chatID, messageID, h.sessionErrorMessage(err), nil)
				return
			}
			keyboard := optionKeyboard(cbCondition, h.searchUC.Conditions())
			h.edit(api, chatID, messageID, fmt.Sprintf(
				"🔍 Step-by-Step Item Search\n\nStep 4: Choose condition\n\nType: %s\nName: %s\nSkin: None (base knife)",
				session.WeaponType, weaponName,
			), &keyboard)
			return
		}
		h.edit(api, chatID, messageID, fmt.Sprintf(
			"❌ No skins found for %s. Try another weapon.", weaponName,
		), ptr(retryKeyboard()))
		return
	}

	keyboard := optionKeyboard(cbSkinName, skins)
	h.edit(api, chatID, messageID, fmt.Sprintf(
		"🔍 Step-by-Step Item Search\n\nStep 3: Choose skin name\n\nType: %s\nName: %s",
		session.WeaponType, weaponName,
	), &keyboard)
}

func (h *Handlers) onSkinName(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, messageID int, userID int64, skinName string) {
	session, err := h.searchUC.SelectSkinName(userID, skinName)
	if err != nil {
		h.edit(api, chatID, messageID, h.sessionErrorMessage(err), nil)
		return
	}

	keyboard := optionKeyboard(cbCondition, h.searchUC.Conditions())
	h.edit(api, chatID, messageID, fmt.Sprintf(
		"🔍 Step-by-Step Item Search\n\nStep 4: Choose condition\n\nType: %s\nName: %s\nSkin: %s",
		session.WeaponType, session.WeaponName, skinName,
	), &keyboard)
}

func (h *Handlers) onCondition(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, messageID int, userID int64, condition string) {
	session, err := h.searchUC.SelectCondition(userID, condition)
	if err != nil {
		h.edit(api, chatID, messageID, h.sessionErrorMessage(err), nil)
		return
	}

	keyboard := optionKeyboard(cbCategory, usecase.AvailableCategories(session.WeaponType))
	h.edit(api, chatID, messageID, fmt.Sprintf(
		"🔍 Step-by-Step Item Search\n\nStep 5: Choose category\n\nType: %s\nName: %s\nSkin: %s\nCondition: %s",
		session.WeaponType, session.WeaponName, session.SkinName, condition,
	), &keyboard)
}

func (h *Handlers) onCategory(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, messageID int, userID int64, category string) {
	result, err := h.searchUC.SelectCategory(ctx, userID, category)
	if err != nil {
		h.edit(api, chatID, messageID, h.sessionErrorMessage(err), nil)
		return
	}

	if !result.Found {
		var builder strings.Builder
		builder.WriteString(fmt.Sprintf("❌ Item not found in the catalog\n\nGenerated name: %s\n", result.FinalName))
		if len(result.Suggestions) > 0 {
			builder.WriteString("\nSimilar items:\n")
			for _, name := range result.Suggestions {
				builder.WriteString("• " + name + "\n")
			}
		}
		builder.WriteString("\n💡 Pick another category or start over.")
		h.edit(api, chatID, messageID, builder.String(), ptr(retryKeyboard()))
		return
	}

	h.edit(api, chatID, messageID, fmt.Sprintf(
		"✅ Item found!\n\nGenerated name: %s\n\nClick below to check the price:", result.FinalName,
	), ptr(itemFoundKeyboard()))
}

// Price checks.

func (h *Handlers) priceCheckFromSearch(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, messageID int, userID int64) {
	session := h.searchUC.Get(userID)
	if session == nil || session.FinalName == "" {
		h.edit(api, chatID, messageID, "❌ Search session expired. Please use /search again.", nil)
		return
	}

	text, keyboard, ok := h.checkPrice(ctx, userID, session.FinalName)
	if !ok {
		h.edit(api, chatID, messageID, text, nil)
		return
	}
	h.edit(api, chatID, messageID, text, keyboard)
}

func (h *Handlers) directPriceCheck(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64, itemName string) {
	text, keyboard, ok := h.checkPrice(ctx, userID, itemName)
	if !ok {
		h.reply(api, chatID, text)
		return
	}
	h.replyWithKeyboard(api, chatID, text, *keyboard)
}

// checkPrice runs the rate-limit gate and the cache-aware lookup, and
// formats a user-facing result. ok is false for clean rejections.
func (h *Handlers) checkPrice(ctx context.Context, userID int64, itemName string) (string, *tgbotapi.InlineKeyboardMarkup, bool) {
	limit, err := h.userUC.CanCheck(ctx, userID)
	if err != nil {
		h.logger.Warn("rate limit check failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
		return "Something went wrong. Please try again.", nil, false
	}
	if !limit.Allowed {
		wait := time.Until(limit.ResetTime).Round(time.Minute)
		if wait < time.Minute {
			wait = time.Minute
		}
		return fmt.Sprintf(
			"⏰ Rate limit exceeded!\n\nPlease wait %d minute(s) before the next price check.\n\n💡 Upgrade to premium for higher limits.",
			int(wait.Minutes()),
		), nil, false
	}

	if err := h.userUC.IncrementCheck(ctx, userID); err != nil {
		h.logger.Warn("rate limit increment failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
	}

	currency := steam.DefaultCurrency
	if user, err := h.userUC.Get(ctx, userID); err == nil && user.Currency != "" {
		currency = user.Currency
	}

	result, err := h.priceUC.GetPrice(ctx, itemName, currency)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return fmt.Sprintf("❌ No item named %q found on the market. Check the name and try again.", itemName), nil, false
		}
		h.logger.Warn("price check failed", zap.String("item", itemName), zap.Error(err))
		return "❌ Error fetching the item price. Please try again later.", nil, false
	}
	if !result.Success {
		return fmt.Sprintf("❌ No price data found for %q right now. Try again later.", itemName), nil, false
	}

	cacheIndicator := ""
	if result.Cached {
		cacheIndicator = " (cached)"
	}
	symbol := steam.CurrencySymbol(result.Currency)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("💰 Price Check Result%s\n\n", cacheIndicator))
	builder.WriteString(fmt.Sprintf("📦 Item: %q\n\nLowest price: %s%s\n", itemName, symbol, result.Price))
	if result.MedianPrice.IsPositive() {
		builder.WriteString(fmt.Sprintf("Median price: %s%s\n", symbol, result.MedianPrice))
	}
	if result.Volume > 0 {
		builder.WriteString(fmt.Sprintf("Volume: %d sold in 24h\n", result.Volume))
	}
	builder.WriteString(fmt.Sprintf("\n🔗 %s\n", steam.MarketURL(steam.DefaultAppID, itemName)))
	builder.WriteString(fmt.Sprintf("\n📊 Rate limit: %d checks remaining this minute\n", limit.Remaining))
	builder.WriteString("\n💡 Tap a button below, then reply with a number:\n• Drop: 10 → -10%\n• Increase: 20 → +20%\n• Target: 50 → $50")

	keyboard := alertButtonsKeyboard()
	return builder.String(), &keyboard, true
}

// Alert creation.

func (h *Handlers) sendAlertPrompt(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64, kind string) {
	session := h.searchUC.Get(userID)
	if session == nil || session.FinalName == "" {
		h.reply(api, chatID, "❗ Please search an item or check a price first, then use the buttons under the result.")
		return
	}

	var text string
	switch kind {
	case promptDrop:
		text = fmt.Sprintf("🔔 Drop alert: Reply with percentage (e.g. 10) for %s", session.FinalName)
	case promptIncrease:
		text = fmt.Sprintf("🔔 Increase alert: Reply with percentage (e.g. 10) for %s", session.FinalName)
	default:
		text = fmt.Sprintf("🎯 Target alert: Reply with target price (e.g. 50) in USD for %s", session.FinalName)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true, Selective: true}
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send alert prompt", zap.Error(err))
	}
}

// handlePromptReply normalizes a bare number from a force-reply exchange
// into the alert grammar the prompt implies.
func (h *Handlers) handlePromptReply(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64, kind, itemName, text string) {
	value, err := decimal.NewFromString(strings.TrimRight(strings.TrimLeft(strings.TrimSpace(text), "+-$"), "%"))
	if err != nil || !value.IsPositive() {
		h.reply(api, chatID, "❌ Please enter a valid positive number.")
		return
	}

	var input string
	switch kind {
	case promptDrop:
		input = "-" + value.String() + "%"
	case promptIncrease:
		input = "+" + value.String() + "%"
	default:
		input = value.String()
	}

	h.createAlert(ctx, api, chatID, userID, itemName, input)
}

func (h *Handlers) createAlert(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64, itemName, input string) {
	result, err := h.priceUC.GetPrice(ctx, itemName, domain.AlertCurrency)
	if err != nil || !result.Success {
		h.reply(api, chatID, "❌ Could not get the current price for this item. Please try again.")
		return
	}

	spec, err := usecase.ParseAlertInput(input, result.Price)
	if err != nil {
		h.reply(api, chatID, "❌ Invalid alert format!\n\nValid formats:\n• \"50\" - alert at $50\n• \"-10%\" - alert when the price drops 10%\n• \"+20%\" - alert when the price increases 20%")
		return
	}

	alert, err := h.alertUC.Create(ctx, userID, itemName, spec)
	if err != nil {
		h.reply(api, chatID, h.errorMessage(err))
		return
	}

	var builder strings.Builder
	builder.WriteString("✅ Price alert created!\n\n")
	builder.WriteString(fmt.Sprintf("Item: %s\n", itemName))
	switch alert.Type {
	case domain.AlertAbsolute:
		builder.WriteString(fmt.Sprintf("Type: Absolute price\nTarget: $%s\n", alert.TargetPrice))
	case domain.AlertPercentageDrop:
		builder.WriteString(fmt.Sprintf("Type: Percentage drop\nThreshold: -%s%%\nBase price: $%s\nTarget: $%s\n",
			alert.PercentageThreshold, alert.BasePrice, alert.TargetPrice.Round(2)))
	case domain.AlertPercentageIncrease:
		builder.WriteString(fmt.Sprintf("Type: Percentage increase\nThreshold: +%s%%\nBase price: $%s\nTarget: $%s\n",
			alert.PercentageThreshold, alert.BasePrice, alert.TargetPrice.Round(2)))
	}
	h.reply(api, chatID, builder.String())
}

// Account commands.

func (h *Handlers) listAlerts(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64) {
	alerts, err := h.alertUC.ListActive(ctx, userID)
	if err != nil {
		h.reply(api, chatID, h.errorMessage(err))
		return
	}
	if len(alerts) == 0 {
		h.reply(api, chatID, "No active alerts. Check an item's price and reply with \"50\", \"-10%\" or \"+20%\" to create one.")
		return
	}

	var builder strings.Builder
	builder.WriteString("🔔 Your active alerts:\n\n")
	for _, alert := range alerts {
		switch alert.Type {
		case domain.AlertAbsolute:
			builder.WriteString(fmt.Sprintf("#%d %s\n🎯 target $%s\n\n", alert.ID, alert.ItemName, alert.TargetPrice))
		case domain.AlertPercentageDrop:
			builder.WriteString(fmt.Sprintf("#%d %s\n📉 -%s%% from $%s\n\n", alert.ID, alert.ItemName, alert.PercentageThreshold, alert.BasePrice))
		case domain.AlertPercentageIncrease:
			builder.WriteString(fmt.Sprintf("#%d %s\n📈 +%s%% from $%s\n\n", alert.ID, alert.ItemName, alert.PercentageThreshold, alert.BasePrice))
		}
	}
	h.reply(api, chatID, builder.String())
}

func (h *Handlers) showHistory(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, itemName string) {
	if itemName == "" {
		h.reply(api, chatID, "Usage: /history AK-47 | Redline (Field-Tested)")
		return
	}

	entries, err := h.priceUC.RecentHistory(ctx, itemName)
	if err != nil {
		h.logger.Warn("history lookup failed", zap.String("item", itemName), zap.Error(err))
		h.reply(api, chatID, "Something went wrong. Please try again.")
		return
	}
	if len(entries) == 0 {
		h.reply(api, chatID, fmt.Sprintf("No recorded price checks for %q in the last 24 hours.", itemName))
		return
	}
	if len(entries) > 10 {
		entries = entries[:10]
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📈 Price history for %q (last 24h):\n\n", itemName))
	for _, entry := range entries {
		when := entry.RecordedAt.Format("Jan 2 15:04")
		if entry.Success {
			builder.WriteString(fmt.Sprintf("• %s: %s%s\n", when, steam.CurrencySymbol(entry.Currency), entry.Price))
		} else {
			builder.WriteString(fmt.Sprintf("• %s: no price available\n", when))
		}
	}
	h.reply(api, chatID, builder.String())
}

func (h *Handlers) showProfile(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64) {
	user, err := h.userUC.Get(ctx, userID)
	if err != nil {
		h.reply(api, chatID, h.errorMessage(err))
		return
	}

	notifications := "on"
	if !user.Notifications {
		notifications = "off"
	}
	h.reply(api, chatID, fmt.Sprintf(
		"👤 Your profile\n\nTier: %s\nCurrency: %s\nNotifications: %s\n\n📊 Usage:\n• Alerts created: %d\n• Price checks: %d/minute",
		user.Tier.DisplayName(), user.Currency, notifications, user.AlertsCreated, user.PriceChecksPerMinute,
	))
}

func (h *Handlers) setCurrency(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, userID int64, args string) {
	if args == "" {
		codes := steam.AvailableCurrencies()
		h.reply(api, chatID, fmt.Sprintf(
			"💰 Supported currencies: %s\n\nSet yours with /currency USD", strings.Join(codes, ", "),
		))
		return
	}
	if !steam.IsSupportedCurrency(args) {
		h.reply(api, chatID, fmt.Sprintf("❌ Unknown currency %q. Use /currency to list supported codes.", args))
		return
	}
	if err := h.userUC.SetCurrency(ctx, userID, args); err != nil {
		h.reply(api, chatID, h.errorMessage(err))
		return
	}
	h.reply(api, chatID, fmt.Sprintf("✅ Currency set to %s!", strings.ToUpper(args)))
}

// Error mapping.

func (h *Handlers) sessionErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrSessionExpired):
		return "❌ Search session expired. Please use /search again."
	case errors.Is(err, usecase.ErrWrongStep):
		return "❌ That choice no longer matches your search. Please use /search again."
	}
	h.logger.Warn("unhandled session error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func (h *Handlers) errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUserNotRegistered):
		return "Please /start to register first."
	case errors.Is(err, usecase.ErrAlertLimitReached):
		return "❌ Alert limit reached!\n\nDeactivate an alert or upgrade to premium for more."
	case errors.Is(err, usecase.ErrInvalidAlertInput):
		return "❌ Invalid alert format. Use \"50\", \"-10%\" or \"+20%\"."
	case errors.Is(err, usecase.ErrAlertNotFound):
		return "Alert not found."
	}
	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

// Send helpers.

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (h *Handlers) replyWithKeyboard(api *tgbotapi.BotAPI, chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (h *Handlers) edit(api *tgbotapi.BotAPI, chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var chattable tgbotapi.Chattable
	if keyboard != nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
		chattable = edit
	} else {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		chattable = edit
	}
	if _, err := api.Send(chattable); err != nil {
		h.logger.Warn("failed to edit message", zap.Error(err))
	}
}

func ptr(k tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &k
}
