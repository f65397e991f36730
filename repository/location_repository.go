package repository

import (
	"context"

	"dinein/model"

	"gorm.io/gorm"
)

type LocationRepository struct{ DB *gorm.DB }

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

func (r *LocationRepository) WithTx(tx *gorm.DB) *LocationRepository {
	return &LocationRepository{DB: tx}
}

func (r *LocationRepository) Create(ctx context.Context, loc *model.RestaurantLocation) error {
	return r.DB.WithContext(ctx).Omit("Restaurant", "Tables").Create(loc).Error
}

func (r *LocationRepository) Save(ctx context.Context, loc *model.RestaurantLocation) error {
	return r.DB.WithContext(ctx).Omit("Restaurant", "Tables").Save(loc).Error
}

// FindForRestaurant returns the location only if it belongs to restaurantID.
func (r *LocationRepository) FindForRestaurant(ctx context.Context, restaurantID, id uint) (*model.RestaurantLocation, error) {
	var loc model.RestaurantLocation
	err := r.DB.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]model.RestaurantLocation, error) {
	var out []model.RestaurantLocation
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *LocationRepository) DeleteByRestaurant(ctx context.Context, restaurantID uint) error {
	return r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Delete(&model.RestaurantLocation{}).Error
}

func (r *LocationRepository) FindByID(ctx context.Context, id uint) (*model.RestaurantLocation, error) {
	var loc model.RestaurantLocation
	if err := r.DB.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) CreateTable(ctx context.Context, t *model.Table) error {
	return r.DB.WithContext(ctx).Omit("RestaurantLocation").Create(t).Error
}

func (r *LocationRepository) ListTables(ctx context.Context, locationID uint) ([]model.Table, error) {
	var out []model.Table
	err := r.DB.WithContext(ctx).
		Where("restaurant_location_id = ?", locationID).
		Order("id").
		Find(&out).Error
	return out, err
}

// FindTable loads a table together with its location and restaurant.
func (r *LocationRepository) FindTable(ctx context.Context, id uint) (*model.Table, error) {
	var t model.Table
	err := r.DB.WithContext(ctx).
		Preload("RestaurantLocation.Restaurant").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
