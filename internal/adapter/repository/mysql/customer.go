package mysql

import (
	"context"

	"collections-backend/internal/domain/customer"

	"gorm.io/gorm"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) GetByID(ctx context.Context, id uint64) (*customer.Customer, error) {
	var out customer.Customer
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*customer.Customer, error) {
	var out customer.Customer
	res := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CustomerRepository) NextUnassignedForUpdate(ctx context.Context, campaignIDs []uint64) (*customer.Customer, error) {
	var out customer.Customer
	res := r.db.WithContext(ctx).
		Clauses(skipLocked).
		Where("campaign_id IN ? AND is_active = ? AND assigned_agent_id IS NULL", campaignIDs, true).
		Order("id ASC").
		First(&out)
	return &out, res.Error
}

func (r *CustomerRepository) ListUnassignedForUpdate(ctx context.Context, campaignID uint64) ([]customer.Customer, error) {
	var out []customer.Customer
	res := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Where("campaign_id = ? AND is_active = ? AND assigned_agent_id IS NULL", campaignID, true).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CustomerRepository) Assign(ctx context.Context, id, agentID uint64) error {
	res := r.db.WithContext(ctx).
		Model(&customer.Customer{}).
		Where("id = ? AND assigned_agent_id IS NULL", id).
		Update("assigned_agent_id", agentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return customer.ErrAlreadyAssigned
	}
	return nil
}

func (r *CustomerRepository) AssignMany(ctx context.Context, ids []uint64, agentID uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&customer.Customer{}).
		Where("id IN ?", ids).
		Update("assigned_agent_id", agentID)
	return res.RowsAffected, res.Error
}

func (r *CustomerRepository) Release(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&customer.Customer{}).
		Where("id IN ?", ids).
		Update("assigned_agent_id", nil)
	return res.RowsAffected, res.Error
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}
