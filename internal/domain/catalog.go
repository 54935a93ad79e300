package domain

import "time"

// Item is one catalog row; Name is the canonical market hash name used as
// the alert's tracked key.
type Item struct {
	ID         uint
	Name       string
	WeaponType string
	WeaponName string
	SkinName   string
	Condition  string
	Category   string
	CreatedAt  time.Time
}

// SkinConditions in wear order, as Steam names them.
var SkinConditions = []string{
	"Factory New",
	"Minimal Wear",
	"Field-Tested",
	"Well-Worn",
	"Battle-Scarred",
}

// Item categories per weapon class.
var (
	WeaponCategories = []string{"Normal", "StatTrak™", "Souvenir"}
	KnifeCategories  = []string{"Normal ★", "★ StatTrak™"}
	GloveCategories  = []string{"Normal ★"}
)

const (
	CategoryStatTrak      = "StatTrak™"
	CategorySouvenir      = "Souvenir"
	CategoryKnifeStatTrak = "★ StatTrak™"
)
