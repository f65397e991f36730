package model

import "gorm.io/gorm"

type GeoStatus string

const (
	GeoEnabled  GeoStatus = "Enabled"
	GeoDisabled GeoStatus = "Disabled"
)

type Country struct {
	gorm.Model
	Name         string        `json:"name" gorm:"not null"`
	Code         string        `json:"code" gorm:"size:3;uniqueIndex"`
	Status       GeoStatus     `json:"status" gorm:"type:varchar(20);default:Enabled;index"`
	Governorates []Governorate `json:"governorates,omitempty" gorm:"foreignKey:CountryID"`
}

type Governorate struct {
	gorm.Model
	CountryID uint      `json:"country_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Status    GeoStatus `json:"status" gorm:"type:varchar(20);default:Enabled;index"`
	Cities    []City    `json:"cities,omitempty" gorm:"foreignKey:GovernorateID"`
}

type City struct {
	gorm.Model
	GovernorateID uint      `json:"governorate_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Status        GeoStatus `json:"status" gorm:"type:varchar(20);default:Enabled;index"`
}
