package uow

import (
	"context"

	"collections-backend/internal/domain/agent"
	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/constraint"
	"collections-backend/internal/domain/customer"
	"collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/workcase"
)

// Repos are bound to one transaction.
type Repos struct {
	Agents       agent.Repository
	Campaigns    campaign.Repository
	Customers    customer.Repository
	Cases        workcase.Repository
	Dispositions disposition.Repository
	Constraints  constraint.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the agent row first, then pass it in; serialises per-agent work
	WithinAgentTx(ctx context.Context, agentID uint64, fn func(r Repos, a *agent.Agent) error) error
}
