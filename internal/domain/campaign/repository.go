package campaign

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint64) (*Campaign, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Campaign, error)

	// Active agents on the campaign roster, ordered by agent id.
	AgentIDs(ctx context.Context, campaignID uint64) ([]uint64, error)

	// Active campaigns the agent is a member of.
	ActiveCampaignIDsForAgent(ctx context.Context, agentID uint64) ([]uint64, error)

	// IsMember reports whether the agent is on the campaign roster,
	// whatever the campaign's state.
	IsMember(ctx context.Context, campaignID, agentID uint64) (bool, error)
}
