package campaignmock

import (
	"context"

	domain "collections-backend/internal/domain/campaign"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies campaign.Repository.
type Repo struct {
	GetByIDFn                   func(ctx context.Context, id uint64) (*domain.Campaign, error)
	GetByIDForUpdateFn          func(ctx context.Context, id uint64) (*domain.Campaign, error)
	AgentIDsFn                  func(ctx context.Context, campaignID uint64) ([]uint64, error)
	ActiveCampaignIDsForAgentFn func(ctx context.Context, agentID uint64) ([]uint64, error)
	IsMemberFn                  func(ctx context.Context, campaignID, agentID uint64) (bool, error)
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Campaign, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Campaign, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) AgentIDs(ctx context.Context, campaignID uint64) ([]uint64, error) {
	if m.AgentIDsFn != nil {
		return m.AgentIDsFn(ctx, campaignID)
	}
	return nil, context.Canceled
}

func (m *Repo) ActiveCampaignIDsForAgent(ctx context.Context, agentID uint64) ([]uint64, error) {
	if m.ActiveCampaignIDsForAgentFn != nil {
		return m.ActiveCampaignIDsForAgentFn(ctx, agentID)
	}
	return nil, context.Canceled
}

func (m *Repo) IsMember(ctx context.Context, campaignID, agentID uint64) (bool, error) {
	if m.IsMemberFn != nil {
		return m.IsMemberFn(ctx, campaignID, agentID)
	}
	return false, context.Canceled
}
