package workcase

import "context"

type Repository interface {
	Create(ctx context.Context, c *Case) error
	Save(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id uint64) (*Case, error)

	// Row-locked read used inside a unit of work.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Case, error)

	// Active case currently held by the agent, gorm.ErrRecordNotFound when none.
	GetActiveByAgent(ctx context.Context, agentID uint64) (*Case, error)
	CountActiveByAgent(ctx context.Context, agentID uint64) (int64, error)

	// Current cases of the campaign in IN_PROGRESS, locked for update.
	// Empty customerIDs / codes mean "no restriction".
	ListStalledForUpdate(ctx context.Context, campaignID uint64, customerIDs []uint64, codes []string) ([]Case, error)
}
