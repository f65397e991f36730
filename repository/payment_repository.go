package repository

import (
	"context"

	"dinein/model"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: tx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return r.DB.WithContext(ctx).Omit("Gateway").Create(p).Error
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (*model.Payment, error) {
	var p model.Payment
	if err := r.DB.WithContext(ctx).Preload("Gateway").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) FindGateway(ctx context.Context, id uint) (*model.PaymentGateway, error) {
	var g model.PaymentGateway
	if err := r.DB.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PaymentRepository) ListGateways(ctx context.Context) ([]model.PaymentGateway, error) {
	var out []model.PaymentGateway
	err := r.DB.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// Updates writes the given columns of payment id.
func (r *PaymentRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.Payment{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
