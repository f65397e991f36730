package repository

import (
	"context"

	"dinein/model"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: tx}
}

// ListCategories applies the enabled scope unless includeDisabled is set, in
// which case only deleted categories are hidden.
func (r *MenuRepository) ListCategories(ctx context.Context, includeDisabled bool) ([]model.MenuCategory, error) {
	q := r.DB.WithContext(ctx)
	if includeDisabled {
		q = q.Scopes(model.Visible)
	} else {
		q = q.Scopes(model.Enabled)
	}
	var out []model.MenuCategory
	err := q.Order("id").Find(&out).Error
	return out, err
}

// CategoriesWithItems lists a restaurant's enabled categories and their items.
func (r *MenuRepository) CategoriesWithItems(ctx context.Context, restaurantID uint) ([]model.MenuCategory, error) {
	var out []model.MenuCategory
	err := r.DB.WithContext(ctx).
		Scopes(model.Enabled).
		Where("restaurant_id = ?", restaurantID).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&out).Error
	return out, err
}

// FindCategory ignores the status scope.
func (r *MenuRepository) FindCategory(ctx context.Context, id uint) (*model.MenuCategory, error) {
	var c model.MenuCategory
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MenuRepository) CreateCategory(ctx context.Context, c *model.MenuCategory) error {
	return r.DB.WithContext(ctx).Omit("MenuItems").Create(c).Error
}

func (r *MenuRepository) SaveCategory(ctx context.Context, c *model.MenuCategory) error {
	return r.DB.WithContext(ctx).Omit("MenuItems").Save(c).Error
}

func (r *MenuRepository) ListItems(ctx context.Context, categoryID uint) ([]model.MenuItem, error) {
	var out []model.MenuItem
	err := r.DB.WithContext(ctx).
		Where("menu_category_id = ?", categoryID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *MenuRepository) FindItem(ctx context.Context, id uint) (*model.MenuItem, error) {
	var it model.MenuItem
	if err := r.DB.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *MenuRepository) SlugExists(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var n int64
	// soft-deleted rows still hold the unique index
	err := r.DB.WithContext(ctx).Unscoped().Model(&model.MenuItem{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *MenuRepository) CreateItems(ctx context.Context, items []model.MenuItem) error {
	return r.DB.WithContext(ctx).Create(&items).Error
}

func (r *MenuRepository) CreateItem(ctx context.Context, it *model.MenuItem) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *MenuRepository) SaveItem(ctx context.Context, it *model.MenuItem) error {
	return r.DB.WithContext(ctx).Save(it).Error
}

func (r *MenuRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}
