package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Reservation struct {
	gorm.Model
	UserID             uint               `json:"user_id" gorm:"index;not null"`
	RestaurantID       uint               `json:"restaurant_id" gorm:"index;not null"`
	TotalPrice         decimal.Decimal    `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Notes              string             `json:"notes"`
	TermsAndConditions bool               `json:"terms_and_conditions"`
	Detail             *ReservationDetail `json:"details,omitempty" gorm:"foreignKey:ReservationID"`
	Payments           []Payment          `json:"payments,omitempty" gorm:"foreignKey:ReservationID"`
}

// ReservationDetail holds the seating specifics of a reservation. The unique
// index keeps it one-to-one with its reservation.
type ReservationDetail struct {
	gorm.Model
	ReservationID            uint            `json:"reservation_id" gorm:"uniqueIndex;not null"`
	TableID                  uint            `json:"table_id" gorm:"index;not null"`
	Table                    *Table          `json:"table,omitempty"`
	ReservationDate          time.Time       `json:"reservation_date"`
	Amount                   decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	NumberOfExtraChairs      int             `json:"number_of_extra_chairs"`
	NumberOfExtraChildChairs int             `json:"number_of_extra_childs_chairs"`
}
