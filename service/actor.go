package service

import (
	"context"
	"errors"

	"dinein/model"
	"dinein/repository"

	"gorm.io/gorm"
)

// Actor is the authenticated user performing a mutation.
type Actor struct {
	UserID uint
	Role   model.UserRole
}

// CanManage reports whether the actor may modify data owned by ownerID.
func (a Actor) CanManage(ownerID uint) bool {
	return a.Role == model.RoleAdmin || a.UserID == ownerID
}

// authorizeRestaurant fails with ErrRestaurantNotFound or ErrForbidden unless
// the actor manages the restaurant.
func authorizeRestaurant(ctx context.Context, restaurants *repository.RestaurantRepository, actor Actor, id uint) error {
	r, err := restaurants.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}
	if !actor.CanManage(r.UserID) {
		return ErrForbidden
	}
	return nil
}
