package mysql

import (
	"context"
	"time"

	"collections-backend/internal/domain/constraint"

	"gorm.io/gorm"
)

type ConstraintRepository struct{ db *gorm.DB }

func NewConstraintRepository(db *gorm.DB) *ConstraintRepository {
	return &ConstraintRepository{db: db}
}

func (r *ConstraintRepository) GetActive(ctx context.Context, customerID uint64, t constraint.Type) (*constraint.OnceConstraint, error) {
	var out constraint.OnceConstraint
	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND type = ? AND is_active = ?", customerID, t, true).
		First(&out)
	return &out, res.Error
}

func (r *ConstraintRepository) Create(ctx context.Context, c *constraint.OnceConstraint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConstraintRepository) DeactivateAll(ctx context.Context, customerID uint64, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&constraint.OnceConstraint{}).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Updates(map[string]any{"is_active": false, "released_at": at})
	return res.RowsAffected, res.Error
}

func (r *ConstraintRepository) ListActive(ctx context.Context, customerID uint64) ([]constraint.OnceConstraint, error) {
	var out []constraint.OnceConstraint
	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Order("triggered_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ConstraintRepository) Repoint(ctx context.Context, fromDispositionID, toDispositionID uint64, t constraint.Type) error {
	return r.db.WithContext(ctx).
		Model(&constraint.OnceConstraint{}).
		Where("disposition_id = ? AND type = ?", fromDispositionID, t).
		Update("disposition_id", toDispositionID).Error
}
