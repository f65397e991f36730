package repository

import (
	"context"

	"dinein/model"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// WithTx returns a copy bound to tx.
func (r *RestaurantRepository) WithTx(tx *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: tx}
}

func (r *RestaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	var out []model.Restaurant
	err := r.DB.WithContext(ctx).
		Preload("Locations").
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) ListByUser(ctx context.Context, userID uint) ([]model.Restaurant, error) {
	var out []model.Restaurant
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Locations").
		Order("id").
		Find(&out).Error
	return out, err
}

// FindByID loads a restaurant with its locations, enabled categories and
// gallery images.
func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	var out model.Restaurant
	err := r.DB.WithContext(ctx).
		Preload("Locations").
		Preload("Categories", model.Enabled).
		Preload("Images").
		First(&out, id).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RestaurantRepository) Get(ctx context.Context, id uint) (*model.Restaurant, error) {
	var out model.Restaurant
	if err := r.DB.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RestaurantRepository) SlugExists(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var n int64
	// soft-deleted rows still hold the unique index
	err := r.DB.WithContext(ctx).Unscoped().Model(&model.Restaurant{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	return r.DB.WithContext(ctx).Omit("Locations", "Categories", "Images").Create(rest).Error
}

func (r *RestaurantRepository) Save(ctx context.Context, rest *model.Restaurant) error {
	return r.DB.WithContext(ctx).Omit("Locations", "Categories", "Images").Save(rest).Error
}

func (r *RestaurantRepository) UpdateColumn(ctx context.Context, id uint, column, value string) error {
	return r.DB.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", id).
		Update(column, value).Error
}

func (r *RestaurantRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Restaurant{}, id).Error
}

func (r *RestaurantRepository) AddImage(ctx context.Context, img *model.RestaurantImage) error {
	return r.DB.WithContext(ctx).Create(img).Error
}
