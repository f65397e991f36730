package repository

import (
	"context"

	"dinein/model"

	"gorm.io/gorm"
)

type GeographyRepository struct{ DB *gorm.DB }

func NewGeographyRepository(db *gorm.DB) *GeographyRepository {
	return &GeographyRepository{DB: db}
}

func (r *GeographyRepository) Countries(ctx context.Context) ([]model.Country, error) {
	var out []model.Country
	err := r.DB.WithContext(ctx).Scopes(model.Enabled).Order("name").Find(&out).Error
	return out, err
}

func (r *GeographyRepository) Governorates(ctx context.Context, countryID uint) ([]model.Governorate, error) {
	var out []model.Governorate
	err := r.DB.WithContext(ctx).Scopes(model.Enabled).
		Where("country_id = ?", countryID).
		Order("name").
		Find(&out).Error
	return out, err
}

func (r *GeographyRepository) Cities(ctx context.Context, governorateID uint) ([]model.City, error) {
	var out []model.City
	err := r.DB.WithContext(ctx).Scopes(model.Enabled).
		Where("governorate_id = ?", governorateID).
		Order("name").
		Find(&out).Error
	return out, err
}
