package customermock

import (
	"context"

	domain "collections-backend/internal/domain/customer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies customer.Repository.
// Writes default to nil, reads default to context.Canceled.
type Repo struct {
	GetByIDFn                 func(ctx context.Context, id uint64) (*domain.Customer, error)
	GetByIDForUpdateFn        func(ctx context.Context, id uint64) (*domain.Customer, error)
	NextUnassignedForUpdateFn func(ctx context.Context, campaignIDs []uint64) (*domain.Customer, error)
	ListUnassignedForUpdateFn func(ctx context.Context, campaignID uint64) ([]domain.Customer, error)
	AssignFn                  func(ctx context.Context, id, agentID uint64) error
	AssignManyFn              func(ctx context.Context, ids []uint64, agentID uint64) (int64, error)
	ReleaseFn                 func(ctx context.Context, ids []uint64) (int64, error)
	SaveFn                    func(ctx context.Context, c *domain.Customer) error
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) NextUnassignedForUpdate(ctx context.Context, campaignIDs []uint64) (*domain.Customer, error) {
	if m.NextUnassignedForUpdateFn != nil {
		return m.NextUnassignedForUpdateFn(ctx, campaignIDs)
	}
	return nil, context.Canceled
}

func (m *Repo) ListUnassignedForUpdate(ctx context.Context, campaignID uint64) ([]domain.Customer, error) {
	if m.ListUnassignedForUpdateFn != nil {
		return m.ListUnassignedForUpdateFn(ctx, campaignID)
	}
	return nil, context.Canceled
}

func (m *Repo) Assign(ctx context.Context, id, agentID uint64) error {
	if m.AssignFn != nil {
		return m.AssignFn(ctx, id, agentID)
	}
	return nil
}

func (m *Repo) AssignMany(ctx context.Context, ids []uint64, agentID uint64) (int64, error) {
	if m.AssignManyFn != nil {
		return m.AssignManyFn(ctx, ids, agentID)
	}
	return int64(len(ids)), nil
}

func (m *Repo) Release(ctx context.Context, ids []uint64) (int64, error) {
	if m.ReleaseFn != nil {
		return m.ReleaseFn(ctx, ids)
	}
	return int64(len(ids)), nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
