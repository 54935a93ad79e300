package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
)

var (
	ErrSessionExpired = errors.New("search session expired")
	ErrWrongStep      = errors.New("selection does not match current step")
)

// SearchUsecase drives the step-by-step item wizard. Sessions live only in
// process memory and expire lazily after 30 idle minutes; this state is
// per instance and not shared across replicas.
type SearchUsecase struct {
	catalog domain.CatalogRepository
	now     func() time.Time

	mu       sync.Mutex
	sessions map[int64]*domain.SearchSession
}

func NewSearchUsecase(catalog domain.CatalogRepository) *SearchUsecase {
	return &SearchUsecase{
		catalog:  catalog,
		now:      time.Now,
		sessions: make(map[int64]*domain.SearchSession),
	}
}

// Start creates a fresh session at the first step, replacing any existing
// one.
func (u *SearchUsecase) Start(telegramUserID int64) *domain.SearchSession {
	session := &domain.SearchSession{
		TelegramUserID: telegramUserID,
		Step:           domain.StepWeaponType,
		Touched:        u.now(),
	}
	u.mu.Lock()
	u.sessions[telegramUserID] = session
	u.mu.Unlock()
	return session
}

// Get returns the user's session, dropping it when idle past the TTL.
func (u *SearchUsecase) Get(telegramUserID int64) *domain.SearchSession {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, ok := u.sessions[telegramUserID]
	if !ok {
		return nil
	}
	if u.now().Sub(session.Touched) > domain.SessionTTL {
		delete(u.sessions, telegramUserID)
		return nil
	}
	copied := *session
	return &copied
}

func (u *SearchUsecase) Cancel(telegramUserID int64) {
	u.mu.Lock()
	delete(u.sessions, telegramUserID)
	u.mu.Unlock()
}

// mutate applies fn to the live session under the lock and refreshes the
// idle timer.
func (u *SearchUsecase) mutate(telegramUserID int64, expect domain.Step, fn func(*domain.SearchSession)) (*domain.SearchSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, ok := u.sessions[telegramUserID]
	if !ok || u.now().Sub(session.Touched) > domain.SessionTTL {
		delete(u.sessions, telegramUserID)
		return nil, ErrSessionExpired
	}
	if session.Step != expect {
		return nil, ErrWrongStep
	}
	fn(session)
	session.Touched = u.now()
	copied := *session
	return &copied, nil
}

func (u *SearchUsecase) SelectWeaponType(telegramUserID int64, weaponType string) (*domain.SearchSession, error) {
	return u.mutate(telegramUserID, domain.StepWeaponType, func(s *domain.SearchSession) {
		s.WeaponType = weaponType
		s.Step = domain.StepWeaponName
	})
}

func (u *SearchUsecase) SelectWeaponName(telegramUserID int64, weaponName string) (*domain.SearchSession, error) {
	return u.mutate(telegramUserID, domain.StepWeaponName, func(s *domain.SearchSession) {
		s.WeaponName = weaponName
		s.Step = domain.StepSkinName
	})
}

// SelectSkinName accepts "" for skinless knives; "Vanilla" is kept as-is
// and neutralized during name generation.
func (u *SearchUsecase) SelectSkinName(telegramUserID int64, skinName string) (*domain.SearchSession, error) {
	return u.mutate(telegramUserID, domain.StepSkinName, func(s *domain.SearchSession) {
		s.SkinName = skinName
		s.Step = domain.StepCondition
	})
}

func (u *SearchUsecase) SelectCondition(telegramUserID int64, condition string) (*domain.SearchSession, error) {
	return u.mutate(telegramUserID, domain.StepCondition, func(s *domain.SearchSession) {
		s.Condition = condition
		s.Step = domain.StepCategory
	})
}

// CategoryResult reports the outcome of the final wizard step. On a catalog
// miss the session stays at the category step and Suggestions carries the
// closest matches.
type CategoryResult struct {
	Found       bool
	FinalName   string
	ItemID      uint
	Suggestions []string
}

// SelectCategory generates the canonical name, validates it against the
// catalog and completes the session on a hit.
func (u *SearchUsecase) SelectCategory(ctx context.Context, telegramUserID int64, category string) (*CategoryResult, error) {
	session := u.Get(telegramUserID)
	if session == nil {
		return nil, ErrSessionExpired
	}
	if session.Step != domain.StepCategory {
		return nil, ErrWrongStep
	}

	finalName := GenerateItemName(session.WeaponType, session.WeaponName, session.SkinName, session.Condition, category)

	item, err := u.catalog.GetByName(ctx, finalName)
	if err != nil {
		if err != domain.ErrNotFound {
			return nil, err
		}
		suggestions, serr := u.catalog.SimilarNames(ctx, session.WeaponName, 5)
		if serr != nil {
			suggestions = nil
		}
		return &CategoryResult{FinalName: finalName, Suggestions: suggestions}, nil
	}

	if _, err := u.mutate(telegramUserID, domain.StepCategory, func(s *domain.SearchSession) {
		s.Category = category
		s.FinalName = finalName
		s.ItemID = item.ID
		s.Step = domain.StepComplete
	}); err != nil {
		return nil, err
	}

	return &CategoryResult{Found: true, FinalName: finalName, ItemID: item.ID}, nil
}

// Option listings for the wizard keyboards.

func (u *SearchUsecase) WeaponTypes(ctx context.Context) ([]string, error) {
	return u.catalog.WeaponTypes(ctx)
}

func (u *SearchUsecase) WeaponNames(ctx context.Context, weaponType string) ([]string, error) {
	return u.catalog.WeaponNames(ctx, weaponType)
}

// SkinNames prepends the synthetic "Vanilla" choice for knives, standing
// for the skinless base knife.
func (u *SearchUsecase) SkinNames(ctx context.Context, weaponType, weaponName string) ([]string, error) {
	names, err := u.catalog.SkinNames(ctx, weaponName)
	if err != nil {
		return nil, err
	}
	if isKnife(weaponType) && len(names) > 0 {
		names = append([]string{"Vanilla"}, names...)
	}
	return names, nil
}

func (u *SearchUsecase) Conditions() []string {
	return domain.SkinConditions
}

// AvailableCategories narrows the category choices per weapon class.
func AvailableCategories(weaponType string) []string {
	switch strings.ToLower(weaponType) {
	case "knife":
		return domain.KnifeCategories
	case "gloves":
		return domain.GloveCategories
	default:
		return domain.WeaponCategories
	}
}

// GenerateItemName builds the canonical market hash name from wizard
// selections. Knives carry the ★ prefix and may be skinless ("Vanilla");
// gloves always carry ★; other weapons take a StatTrak™/Souvenir prefix
// from the category.
func GenerateItemName(weaponType, weaponName, skinName, condition, category string) string {
	hasSkin := strings.TrimSpace(skinName) != "" && !strings.EqualFold(skinName, "vanilla")

	if isKnife(weaponType) {
		prefix := "★ "
		if category == domain.CategoryKnifeStatTrak {
			prefix = "★ StatTrak™ "
		}
		if !hasSkin {
			return prefix + weaponName
		}
		return fmt.Sprintf("%s%s | %s (%s)", prefix, weaponName, skinName, condition)
	}

	if isGloves(weaponType) {
		return fmt.Sprintf("★ %s | %s (%s)", weaponName, skinName, condition)
	}

	prefix := ""
	switch category {
	case domain.CategoryStatTrak:
		prefix = "StatTrak™ "
	case domain.CategorySouvenir:
		prefix = "Souvenir "
	}
	return fmt.Sprintf("%s%s | %s (%s)", prefix, weaponName, skinName, condition)
}

func isKnife(weaponType string) bool {
	return strings.EqualFold(weaponType, "knife")
}

func isGloves(weaponType string) bool {
	return strings.EqualFold(weaponType, "gloves")
}
