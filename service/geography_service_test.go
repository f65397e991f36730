package service

import (
	"context"
	"testing"

	"dinein/database/dbtest"
	"dinein/model"
)

func TestGeographyService_EnabledOnly(t *testing.T) {
	db := dbtest.New(t)
	svc := NewGeographyService(db)
	ctx := context.Background()

	egypt := model.Country{Name: "Egypt", Code: "EG", Status: model.GeoEnabled}
	hidden := model.Country{Name: "Atlantis", Code: "AT", Status: model.GeoDisabled}
	db.Create(&egypt)
	db.Create(&hidden)

	cairo := model.Governorate{CountryID: egypt.ID, Name: "Cairo", Status: model.GeoEnabled}
	giza := model.Governorate{CountryID: egypt.ID, Name: "Giza", Status: model.GeoDisabled}
	db.Create(&cairo)
	db.Create(&giza)

	db.Create(&model.City{GovernorateID: cairo.ID, Name: "Maadi", Status: model.GeoEnabled})
	db.Create(&model.City{GovernorateID: cairo.ID, Name: "Old Town", Status: model.GeoDisabled})

	countries, err := svc.Countries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(countries) != 1 || countries[0].Name != "Egypt" {
		t.Errorf("countries = %+v, want only Egypt", countries)
	}

	govs, err := svc.Governorates(ctx, egypt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(govs) != 1 || govs[0].Name != "Cairo" {
		t.Errorf("governorates = %+v, want only Cairo", govs)
	}

	cities, err := svc.Cities(ctx, cairo.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cities) != 1 || cities[0].Name != "Maadi" {
		t.Errorf("cities = %+v, want only Maadi", cities)
	}
}
