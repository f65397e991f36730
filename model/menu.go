package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryStatus string

const (
	CategoryEnabled  CategoryStatus = "Enabled"
	CategoryDisabled CategoryStatus = "Disabled"
	CategoryDeleted  CategoryStatus = "Deleted"
)

func (s CategoryStatus) Valid() bool {
	switch s {
	case CategoryEnabled, CategoryDisabled, CategoryDeleted:
		return true
	}
	return false
}

type MenuCategory struct {
	gorm.Model
	RestaurantID uint           `json:"restaurant_id" gorm:"index;not null"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description"`
	Status       CategoryStatus `json:"status" gorm:"type:varchar(20);default:Enabled;index"`
	MenuItems    []MenuItem     `json:"menu_items,omitempty" gorm:"foreignKey:MenuCategoryID"`
}

type ItemStatus string

const (
	ItemAvailable   ItemStatus = "Available"
	ItemUnavailable ItemStatus = "Unavailable"
)

func (s ItemStatus) Valid() bool {
	return s == ItemAvailable || s == ItemUnavailable
}

type MenuItem struct {
	gorm.Model
	MenuCategoryID uint            `json:"menu_category_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"not null"`
	Slug           string          `json:"slug" gorm:"uniqueIndex;not null"`
	Description    string          `json:"description"`
	Image          string          `json:"image"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	SalePrice      decimal.Decimal `json:"sale_price" gorm:"type:decimal(10,2);not null"`
	Status         ItemStatus      `json:"status" gorm:"type:varchar(20);default:Available;index"`
}
