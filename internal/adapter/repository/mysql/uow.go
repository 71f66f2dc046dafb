package mysql

import (
	"context"

	"collections-backend/internal/domain/agent"
	"collections-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Agents:       &AgentRepository{db: tx},
		Campaigns:    &CampaignRepository{db: tx},
		Customers:    &CustomerRepository{db: tx},
		Cases:        &CaseRepository{db: tx},
		Dispositions: &DispositionRepository{db: tx},
		Constraints:  &ConstraintRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
	return classify(err)
}

func (u *GormUoW) WithinAgentTx(ctx context.Context, agentID uint64, fn func(r uow.Repos, a *agent.Agent) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the agent row up-front so per-agent work serialises
		a, err := r.Agents.GetByIDForUpdate(ctx, agentID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
	return classify(err)
}
