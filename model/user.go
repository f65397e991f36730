package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOwner    UserRole = "owner"
	RoleCustomer UserRole = "customer"
)

type User struct {
	gorm.Model
	Name     string   `json:"name"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	Phone    string   `json:"phone"`
	Role     UserRole `json:"role" gorm:"type:varchar(20);default:customer"`
}
