package model

import (
	"gorm.io/gorm"
)

type RestaurantStatus string

const (
	RestaurantActive   RestaurantStatus = "Active"
	RestaurantInactive RestaurantStatus = "Inactive"
)

type Restaurant struct {
	gorm.Model
	UserID      uint                 `json:"user_id" gorm:"index;not null"`
	Slug        string               `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string               `json:"title"`
	Name        string               `json:"name" gorm:"not null"`
	Summary     string               `json:"summary"`
	Description string               `json:"description"`
	Logo        string               `json:"logo"`
	Cover       string               `json:"cover"`
	Status      RestaurantStatus     `json:"status" gorm:"type:varchar(20);default:Active"`
	Locations   []RestaurantLocation `json:"locations,omitempty" gorm:"foreignKey:RestaurantID"`
	Categories  []MenuCategory       `json:"categories,omitempty" gorm:"foreignKey:RestaurantID"`
	Images      []RestaurantImage    `json:"images,omitempty" gorm:"foreignKey:RestaurantID"`
}

type RestaurantImage struct {
	gorm.Model
	RestaurantID uint   `json:"restaurant_id" gorm:"index;not null"`
	Image        string `json:"image"`
}

type LocationStatus string

const (
	LocationOpened LocationStatus = "Opened"
	LocationClosed LocationStatus = "Closed"
)

type RestaurantLocation struct {
	gorm.Model
	RestaurantID   uint           `json:"restaurant_id" gorm:"index;not null"`
	Restaurant     *Restaurant    `json:"restaurant,omitempty"`
	Address        string         `json:"address"`
	CountryID      *uint          `json:"country_id"`
	GovernorateID  *uint          `json:"governorate_id"`
	CityID         *uint          `json:"city_id"`
	State          string         `json:"state"`
	Zip            string         `json:"zip"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	OpeningTime    string         `json:"opening_time"`
	ClosedTime     string         `json:"closed_time"`
	ClosedDays     string         `json:"closed_days"`
	NumberOfTables int            `json:"number_of_tables"`
	PhoneNumber    string         `json:"phone_number"`
	MobileNumber   string         `json:"mobile_number"`
	HotLine        string         `json:"hot_line"`
	Status         LocationStatus `json:"status" gorm:"type:varchar(20);default:Opened"`
	Tables         []Table        `json:"tables,omitempty" gorm:"foreignKey:RestaurantLocationID"`
}

type TableStatus string

const (
	TableAvailable   TableStatus = "Available"
	TableUnavailable TableStatus = "Unavailable"
)

// Table is a bookable table at a restaurant location.
type Table struct {
	gorm.Model
	RestaurantLocationID uint                `json:"restaurant_location_id" gorm:"index;not null"`
	RestaurantLocation   *RestaurantLocation `json:"location,omitempty"`
	Number               string              `json:"number"`
	Capacity             int                 `json:"capacity"`
	Status               TableStatus         `json:"status" gorm:"type:varchar(20);default:Available"`
}

func (Table) TableName() string {
	return "restaurant_tables"
}
