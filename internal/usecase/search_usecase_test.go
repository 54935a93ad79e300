package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
)

func TestGenerateItemName(t *testing.T) {
	tests := []struct {
		name       string
		weaponType string
		weaponName string
		skinName   string
		condition  string
		category   string
		want       string
	}{
		{
			name:       "rifle normal",
			weaponType: "Rifle", weaponName: "AK-47", skinName: "Redline",
			condition: "Field-Tested", category: "Normal",
			want: "AK-47 | Redline (Field-Tested)",
		},
		{
			name:       "rifle stattrak",
			weaponType: "Rifle", weaponName: "AK-47", skinName: "Redline",
			condition: "Field-Tested", category: "StatTrak™",
			want: "StatTrak™ AK-47 | Redline (Field-Tested)",
		},
		{
			name:       "rifle souvenir",
			weaponType: "Rifle", weaponName: "AWP", skinName: "Dragon Lore",
			condition: "Factory New", category: "Souvenir",
			want: "Souvenir AWP | Dragon Lore (Factory New)",
		},
		{
			name:       "knife with skin",
			weaponType: "Knife", weaponName: "Bayonet", skinName: "Doppler",
			condition: "Factory New", category: "Normal ★",
			want: "★ Bayonet | Doppler (Factory New)",
		},
		{
			name:       "knife stattrak",
			weaponType: "Knife", weaponName: "Karambit", skinName: "Fade",
			condition: "Factory New", category: "★ StatTrak™",
			want: "★ StatTrak™ Karambit | Fade (Factory New)",
		},
		{
			name:       "vanilla knife has no skin suffix",
			weaponType: "Knife", weaponName: "Bayonet", skinName: "Vanilla",
			condition: "Factory New", category: "Normal ★",
			want: "★ Bayonet",
		},
		{
			name:       "empty skin also means vanilla",
			weaponType: "Knife", weaponName: "Bayonet", skinName: "",
			condition: "Factory New", category: "Normal ★",
			want: "★ Bayonet",
		},
		{
			name:       "gloves",
			weaponType: "Gloves", weaponName: "Sport Gloves", skinName: "Pandora's Box",
			condition: "Field-Tested", category: "Normal ★",
			want: "★ Sport Gloves | Pandora's Box (Field-Tested)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateItemName(tt.weaponType, tt.weaponName, tt.skinName, tt.condition, tt.category)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAvailableCategories(t *testing.T) {
	tests := []struct {
		weaponType string
		want       []string
	}{
		{"Rifle", domain.WeaponCategories},
		{"Knife", domain.KnifeCategories},
		{"knife", domain.KnifeCategories},
		{"Gloves", domain.GloveCategories},
		{"Pistol", domain.WeaponCategories},
	}

	for _, tt := range tests {
		t.Run(tt.weaponType, func(t *testing.T) {
			got := AvailableCategories(tt.weaponType)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestSearchWizardHappyPath(t *testing.T) {
	catalog := newFakeCatalogRepo(domain.Item{
		ID: 7, Name: "AK-47 | Redline (Field-Tested)",
		WeaponType: "Rifle", WeaponName: "AK-47", SkinName: "Redline",
		Condition: "Field-Tested", Category: "Normal",
	})
	uc := NewSearchUsecase(catalog)

	uc.Start(42)
	if _, err := uc.SelectWeaponType(42, "Rifle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.SelectWeaponName(42, "AK-47"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.SelectSkinName(42, "Redline"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.SelectCondition(42, "Field-Tested"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := uc.SelectCategory(context.Background(), 42, "Normal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found {
		t.Fatal("expected catalog hit")
	}
	if result.FinalName != "AK-47 | Redline (Field-Tested)" {
		t.Errorf("unexpected final name %q", result.FinalName)
	}
	if result.ItemID != 7 {
		t.Errorf("expected item ID 7, got %d", result.ItemID)
	}

	session := uc.Get(42)
	if session == nil || session.Step != domain.StepComplete {
		t.Fatalf("expected completed session, got %+v", session)
	}
	if session.FinalName != result.FinalName {
		t.Errorf("session final name %q does not match result %q", session.FinalName, result.FinalName)
	}
}

func TestSearchWizardCatalogMissKeepsStep(t *testing.T) {
	catalog := newFakeCatalogRepo()
	catalog.similar = []string{"AK-47 | Redline (Minimal Wear)", "AK-47 | Redline (Well-Worn)"}
	uc := NewSearchUsecase(catalog)

	uc.Start(42)
	mustStep := func(fn func() error) {
		t.Helper()
		if err := fn(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	mustStep(func() error { _, err := uc.SelectWeaponType(42, "Rifle"); return err })
	mustStep(func() error { _, err := uc.SelectWeaponName(42, "AK-47"); return err })
	mustStep(func() error { _, err := uc.SelectSkinName(42, "Redline"); return err })
	mustStep(func() error { _, err := uc.SelectCondition(42, "Field-Tested"); return err })

	result, err := uc.SelectCategory(context.Background(), 42, "Normal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Found {
		t.Fatal("expected catalog miss")
	}
	if len(result.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(result.Suggestions))
	}

	// The session stays at the category step so another pick can be made.
	session := uc.Get(42)
	if session == nil || session.Step != domain.StepCategory {
		t.Fatalf("expected session at category step, got %+v", session)
	}
	if session.FinalName != "" {
		t.Errorf("miss must not record a final name, got %q", session.FinalName)
	}
}

func TestSearchWizardStepOrder(t *testing.T) {
	uc := NewSearchUsecase(newFakeCatalogRepo())

	uc.Start(42)
	if _, err := uc.SelectCondition(42, "Field-Tested"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep, got %v", err)
	}
	if _, err := uc.SelectWeaponType(42, "Rifle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Repeating a completed step is also rejected.
	if _, err := uc.SelectWeaponType(42, "Pistol"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep, got %v", err)
	}
}

func TestSearchSessionExpiry(t *testing.T) {
	uc := NewSearchUsecase(newFakeCatalogRepo())

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return current }

	uc.Start(42)
	if _, err := uc.SelectWeaponType(42, "Rifle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Activity keeps the session alive past the original deadline.
	current = current.Add(25 * time.Minute)
	if _, err := uc.SelectWeaponName(42, "AK-47"); err != nil {
		t.Fatalf("session should still be alive: %v", err)
	}

	// Thirty-one idle minutes kill it.
	current = current.Add(31 * time.Minute)
	if got := uc.Get(42); got != nil {
		t.Errorf("expected expired session, got %+v", got)
	}
	if _, err := uc.SelectSkinName(42, "Redline"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSearchStartReplacesSession(t *testing.T) {
	uc := NewSearchUsecase(newFakeCatalogRepo())

	uc.Start(42)
	if _, err := uc.SelectWeaponType(42, "Rifle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc.Start(42)
	session := uc.Get(42)
	if session == nil || session.Step != domain.StepWeaponType {
		t.Fatalf("expected fresh session at first step, got %+v", session)
	}
	if session.WeaponType != "" {
		t.Errorf("expected cleared selections, got %q", session.WeaponType)
	}
}

func TestSkinNamesAddsVanillaForKnives(t *testing.T) {
	catalog := newFakeCatalogRepo(domain.Item{
		Name: "★ Bayonet | Doppler (Factory New)",
		WeaponType: "Knife", WeaponName: "Bayonet", SkinName: "Doppler",
	})
	uc := NewSearchUsecase(catalog)

	names, err := uc.SkinNames(context.Background(), "Knife", "Bayonet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 || names[0] != "Vanilla" {
		t.Fatalf("expected Vanilla first, got %v", names)
	}

	rifleNames, err := uc.SkinNames(context.Background(), "Rifle", "Bayonet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range rifleNames {
		if name == "Vanilla" {
			t.Error("Vanilla must not appear for non-knives")
		}
	}
}
