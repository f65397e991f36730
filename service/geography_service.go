package service

import (
	"context"

	"dinein/model"
	"dinein/repository"

	"gorm.io/gorm"
)

// GeographyService lists enabled countries, governorates and cities.
type GeographyService struct {
	geo *repository.GeographyRepository
}

func NewGeographyService(db *gorm.DB) *GeographyService {
	return &GeographyService{geo: repository.NewGeographyRepository(db)}
}

func (s *GeographyService) Countries(ctx context.Context) ([]model.Country, error) {
	return s.geo.Countries(ctx)
}

func (s *GeographyService) Governorates(ctx context.Context, countryID uint) ([]model.Governorate, error) {
	return s.geo.Governorates(ctx, countryID)
}

func (s *GeographyService) Cities(ctx context.Context, governorateID uint) ([]model.City, error) {
	return s.geo.Cities(ctx, governorateID)
}
