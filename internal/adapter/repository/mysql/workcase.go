package mysql

import (
	"context"

	"collections-backend/internal/domain/workcase"

	"gorm.io/gorm"
)

type CaseRepository struct{ db *gorm.DB }

func NewCaseRepository(db *gorm.DB) *CaseRepository { return &CaseRepository{db: db} }

func (r *CaseRepository) Create(ctx context.Context, c *workcase.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CaseRepository) Save(ctx context.Context, c *workcase.Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CaseRepository) GetByID(ctx context.Context, id uint64) (*workcase.Case, error) {
	var out workcase.Case
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CaseRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*workcase.Case, error) {
	var out workcase.Case
	res := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CaseRepository) GetActiveByAgent(ctx context.Context, agentID uint64) (*workcase.Case, error) {
	var out workcase.Case
	res := r.db.WithContext(ctx).
		Where("agent_id = ? AND is_active = ?", agentID, true).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *CaseRepository) CountActiveByAgent(ctx context.Context, agentID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&workcase.Case{}).
		Where("agent_id = ? AND is_active = ?", agentID, true).
		Count(&n)
	return n, res.Error
}

func (r *CaseRepository) ListStalledForUpdate(ctx context.Context, campaignID uint64, customerIDs []uint64, codes []string) ([]workcase.Case, error) {
	q := r.db.WithContext(ctx).
		Model(&workcase.Case{}).
		Select("cases.*").
		Joins("JOIN customers ON customers.current_case_id = cases.id").
		Where("customers.campaign_id = ? AND customers.is_active = ? AND cases.status = ?",
			campaignID, true, workcase.StatusInProgress)
	if len(customerIDs) > 0 {
		q = q.Where("customers.id IN ?", customerIDs)
	}
	if len(codes) > 0 {
		q = q.Joins("JOIN dispositions ON dispositions.id = cases.current_disposition_id").
			Where("dispositions.code IN ?", codes)
	}

	var out []workcase.Case
	res := q.Clauses(forUpdate).Order("cases.id ASC").Find(&out)
	return out, res.Error
}
