package casemock

import (
	"context"

	domain "collections-backend/internal/domain/workcase"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies workcase.Repository.
// Writes default to nil, reads default to context.Canceled.
type Repo struct {
	CreateFn               func(ctx context.Context, c *domain.Case) error
	SaveFn                 func(ctx context.Context, c *domain.Case) error
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Case, error)
	GetByIDForUpdateFn     func(ctx context.Context, id uint64) (*domain.Case, error)
	GetActiveByAgentFn     func(ctx context.Context, agentID uint64) (*domain.Case, error)
	CountActiveByAgentFn   func(ctx context.Context, agentID uint64) (int64, error)
	ListStalledForUpdateFn func(ctx context.Context, campaignID uint64, customerIDs []uint64, codes []string) ([]domain.Case, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Case) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Case) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Case, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Case, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByAgent(ctx context.Context, agentID uint64) (*domain.Case, error) {
	if m.GetActiveByAgentFn != nil {
		return m.GetActiveByAgentFn(ctx, agentID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountActiveByAgent(ctx context.Context, agentID uint64) (int64, error) {
	if m.CountActiveByAgentFn != nil {
		return m.CountActiveByAgentFn(ctx, agentID)
	}
	return 0, context.Canceled
}

func (m *Repo) ListStalledForUpdate(ctx context.Context, campaignID uint64, customerIDs []uint64, codes []string) ([]domain.Case, error) {
	if m.ListStalledForUpdateFn != nil {
		return m.ListStalledForUpdateFn(ctx, campaignID, customerIDs, codes)
	}
	return nil, context.Canceled
}
