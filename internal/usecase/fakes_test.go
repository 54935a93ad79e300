package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes shared by the usecase tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) GetByTelegramID(_ context.Context, telegramUserID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramUserID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.TelegramUserID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateIdentity(_ context.Context, telegramUserID int64, username, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramUserID]
	if !ok {
		return domain.ErrNotFound
	}
	user.Username = username
	user.FirstName = firstName
	user.LastName = lastName
	return nil
}

func (r *fakeUserRepo) UpdateCurrency(_ context.Context, telegramUserID int64, currency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramUserID]
	if !ok {
		return domain.ErrNotFound
	}
	user.Currency = currency
	return nil
}

func (r *fakeUserRepo) UpdateUsage(_ context.Context, telegramUserID int64, usage domain.Usage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramUserID]
	if !ok {
		return domain.ErrNotFound
	}
	user.AlertsCreated = usage.AlertsCreated
	user.PriceChecksThisMinute = usage.PriceChecksThisMinute
	user.LastPriceCheck = usage.LastPriceCheck
	return nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts map[uint]*domain.PriceAlert
	nextID uint
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[uint]*domain.PriceAlert), nextID: 1}
}

func (r *fakeAlertRepo) Create(_ context.Context, alert *domain.PriceAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert.ID = r.nextID
	r.nextID++
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *fakeAlertRepo) ListActiveByUser(_ context.Context, userID uint) ([]domain.PriceAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PriceAlert
	for id := uint(1); id < r.nextID; id++ {
		if alert, ok := r.alerts[id]; ok && alert.IsActive && alert.UserID == userID {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ListActive(_ context.Context) ([]domain.PriceAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PriceAlert
	for id := uint(1); id < r.nextID; id++ {
		if alert, ok := r.alerts[id]; ok && alert.IsActive {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) CountActiveByUser(_ context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, alert := range r.alerts {
		if alert.IsActive && alert.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAlertRepo) Deactivate(_ context.Context, alertID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[alertID]
	if !ok || !alert.IsActive {
		return false, nil
	}
	alert.IsActive = false
	return true, nil
}

func (r *fakeAlertRepo) UpdateCurrentPrice(_ context.Context, alertID uint, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[alertID]
	if !ok {
		return domain.ErrNotFound
	}
	alert.CurrentPrice = price
	return nil
}

type fakePriceCacheRepo struct {
	mu      sync.Mutex
	live    map[string]*domain.PriceCacheEntry
	history []domain.PriceHistoryEntry
}

func newFakePriceCacheRepo() *fakePriceCacheRepo {
	return &fakePriceCacheRepo{live: make(map[string]*domain.PriceCacheEntry)}
}

func (r *fakePriceCacheRepo) GetLive(_ context.Context, itemName string) (*domain.PriceCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.live[itemName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *fakePriceCacheRepo) UpsertLive(_ context.Context, entry *domain.PriceCacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.live[entry.ItemName] = &copied
	return nil
}

func (r *fakePriceCacheRepo) AppendHistory(_ context.Context, entry *domain.PriceHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakePriceCacheRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for name, entry := range r.live {
		if entry.Expired(now) {
			delete(r.live, name)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakePriceCacheRepo) History(_ context.Context, itemName string, since time.Time) ([]domain.PriceHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PriceHistoryEntry
	for _, entry := range r.history {
		if entry.ItemName == itemName && !entry.RecordedAt.Before(since) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// fakeQuoteClient serves canned quotes keyed by item name and counts calls.
type fakeQuoteClient struct {
	mu     sync.Mutex
	quotes map[string]*domain.Quote
	errs   map[string]error
	calls  int
}

func newFakeQuoteClient() *fakeQuoteClient {
	return &fakeQuoteClient{quotes: make(map[string]*domain.Quote), errs: make(map[string]error)}
}

func (c *fakeQuoteClient) Quote(_ context.Context, itemName, currency string, _ int) (*domain.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if err, ok := c.errs[itemName]; ok {
		return nil, err
	}
	quote, ok := c.quotes[itemName]
	if !ok {
		return &domain.Quote{Success: false, Currency: currency}, nil
	}
	copied := *quote
	if copied.Currency == "" {
		copied.Currency = currency
	}
	return &copied, nil
}

func (c *fakeQuoteClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeCatalogRepo struct {
	items   map[string]domain.Item
	similar []string
}

func newFakeCatalogRepo(items ...domain.Item) *fakeCatalogRepo {
	byName := make(map[string]domain.Item, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}
	return &fakeCatalogRepo{items: byName}
}

func (r *fakeCatalogRepo) GetByName(_ context.Context, name string) (*domain.Item, error) {
	item, ok := r.items[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *fakeCatalogRepo) WeaponTypes(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, item := range r.items {
		if !seen[item.WeaponType] {
			seen[item.WeaponType] = true
			out = append(out, item.WeaponType)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) WeaponNames(_ context.Context, weaponType string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, item := range r.items {
		if item.WeaponType == weaponType && !seen[item.WeaponName] {
			seen[item.WeaponName] = true
			out = append(out, item.WeaponName)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) SkinNames(_ context.Context, weaponName string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, item := range r.items {
		if item.WeaponName == weaponName && item.SkinName != "" && !seen[item.SkinName] {
			seen[item.SkinName] = true
			out = append(out, item.SkinName)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) SimilarNames(_ context.Context, _ string, limit int) ([]string, error) {
	if len(r.similar) > limit {
		return r.similar[:limit], nil
	}
	return r.similar, nil
}

func (r *fakeCatalogRepo) Upsert(_ context.Context, items []domain.Item) error {
	for _, item := range items {
		r.items[item.Name] = item
	}
	return nil
}

// fakeNotifier records every delivered message.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	userIDs  []int64
	err      error
}

func (n *fakeNotifier) Notify(telegramUserID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.userIDs = append(n.userIDs, telegramUserID)
	n.messages = append(n.messages, text)
	return n.err
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func seedUser(repo *fakeUserRepo, telegramUserID int64, tier domain.Tier) *domain.User {
	limits := domain.LimitsForTier(tier)
	user := &domain.User{
		TelegramUserID:       telegramUserID,
		Currency:             "USD",
		Notifications:        true,
		Tier:                 tier,
		MaxAlerts:            limits.MaxAlerts,
		PriceChecksPerMinute: limits.PriceChecksPerMinute,
	}
	_ = repo.Create(context.Background(), user)
	return user
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
