package mysql

import (
	"context"

	"collections-backend/internal/domain/disposition"

	"gorm.io/gorm"
)

type DispositionRepository struct{ db *gorm.DB }

func NewDispositionRepository(db *gorm.DB) *DispositionRepository {
	return &DispositionRepository{db: db}
}

func (r *DispositionRepository) Create(ctx context.Context, d *disposition.Disposition) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DispositionRepository) GetByID(ctx context.Context, id uint64) (*disposition.Disposition, error) {
	var out disposition.Disposition
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *DispositionRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&disposition.Disposition{}, id).Error
}

func (r *DispositionRepository) Archive(ctx context.Context, h *disposition.EditHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *DispositionRepository) ListByCustomer(ctx context.Context, customerID uint64) ([]disposition.Disposition, error) {
	var out []disposition.Disposition
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

func (r *DispositionRepository) ListHistoryByCustomer(ctx context.Context, customerID uint64) ([]disposition.EditHistory, error) {
	var out []disposition.EditHistory
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
