package repository

import (
	"context"

	"dinein/model"

	"gorm.io/gorm"
)

type ReservationRepository struct{ DB *gorm.DB }

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) WithTx(tx *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: tx}
}

func (r *ReservationRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Detail.Table").
		Preload("Payments.Gateway")
}

func (r *ReservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	err := r.withRelations(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *ReservationRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]model.Reservation, error) {
	var out []model.Reservation
	err := r.withRelations(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var out model.Reservation
	if err := r.withRelations(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	return r.DB.WithContext(ctx).Omit("Detail", "Payments").Create(res).Error
}

func (r *ReservationRepository) CreateDetail(ctx context.Context, d *model.ReservationDetail) error {
	return r.DB.WithContext(ctx).Omit("Table").Create(d).Error
}

// Delete removes the reservation together with its detail and payments.
func (r *ReservationRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&model.ReservationDetail{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Reservation{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
