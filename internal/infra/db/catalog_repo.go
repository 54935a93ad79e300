package db

import (
	"context"

	"github.com/maksym-ppt/skins-price-alert/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	var model itemModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapItemToDomain(model), nil
}

func (r *CatalogRepository) WeaponTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).Model(&itemModel{}).
		Distinct("weapon_type").
		Order("weapon_type").
		Pluck("weapon_type", &types).Error
	return types, err
}

func (r *CatalogRepository) WeaponNames(ctx context.Context, weaponType string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&itemModel{}).
		Where("weapon_type = ?", weaponType).
		Distinct("weapon_name").
		Order("weapon_name").
		Pluck("weapon_name", &names).Error
	return names, err
}

func (r *CatalogRepository) SkinNames(ctx context.Context, weaponName string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&itemModel{}).
		Where("weapon_name = ? AND skin_name <> ''", weaponName).
		Distinct("skin_name").
		Order("skin_name").
		Pluck("skin_name", &names).Error
	return names, err
}

func (r *CatalogRepository) SimilarNames(ctx context.Context, query string, limit int) ([]string, error) {
	var names []string
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).Model(&itemModel{}).
		Where("name ILIKE ? OR weapon_name ILIKE ?", pattern, pattern).
		Order("name").
		Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

func (r *CatalogRepository) Upsert(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]itemModel, 0, len(items))
	for _, item := range items {
		models = append(models, itemModel{
			Name:       item.Name,
			WeaponType: item.WeaponType,
			WeaponName: item.WeaponName,
			SkinName:   item.SkinName,
			Condition:  item.Condition,
			Category:   item.Category,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"weapon_type", "weapon_name", "skin_name", "condition", "category",
		}),
	}).CreateInBatches(models, 500).Error
}

func mapItemToDomain(model itemModel) *domain.Item {
	return &domain.Item{
		ID:         model.ID,
		Name:       model.Name,
		WeaponType: model.WeaponType,
		WeaponName: model.WeaponName,
		SkinName:   model.SkinName,
		Condition:  model.Condition,
		Category:   model.Category,
		CreatedAt:  model.CreatedAt,
	}
}
