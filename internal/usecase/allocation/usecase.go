package allocation

import (
	"context"
	"errors"
	"strconv"

	"collections-backend/internal/domain/agent"
	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/customer"
	"collections-backend/internal/domain/events"
	"collections-backend/internal/domain/uow"
	"collections-backend/internal/domain/workcase"
	"collections-backend/internal/infrastructure/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	uow    uow.UnitOfWork
	pub    events.Publisher
	logger *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, pub events.Publisher, logger *zap.Logger) *Usecase {
	if pub == nil {
		pub = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{uow: tx, pub: pub, logger: logger}
}

// AllocateNext hands the agent the oldest unassigned customer from the
// campaigns they belong to and opens a case for it.
func (u *Usecase) AllocateNext(ctx context.Context, agentID uint64) (*AllocationDTO, error) {
	var dto *AllocationDTO

	err := u.uow.WithinAgentTx(ctx, agentID, func(r uow.Repos, a *agent.Agent) error {
		if !a.IsActive {
			return agent.ErrNotFound
		}

		// one case at a time: the agent must disposition before pulling again
		active, err := r.Cases.CountActiveByAgent(ctx, a.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return workcase.ErrActiveCaseExists
		}

		campaignIDs, err := r.Campaigns.ActiveCampaignIDsForAgent(ctx, a.ID)
		if err != nil {
			return err
		}
		if len(campaignIDs) == 0 {
			return campaign.ErrNotMember
		}

		c, err := r.Customers.NextUnassignedForUpdate(ctx, campaignIDs)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer.ErrNoneAvailable
		}
		if err != nil {
			return err
		}

		if err := r.Customers.Assign(ctx, c.ID, a.ID); err != nil {
			return err
		}

		wc := workcase.Open(c.ID, a.ID)
		if err := r.Cases.Create(ctx, wc); err != nil {
			return err
		}

		c.AssignedAgentID = &a.ID
		c.CurrentCaseID = &wc.ID
		if err := r.Customers.Save(ctx, c); err != nil {
			return err
		}

		dto = toDTO(c, wc)
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = agent.ErrNotFound
	}
	if err != nil {
		metrics.AllocationsTotal.WithLabelValues(outcome(err)).Inc()
		u.logger.Debug("allocation refused", zap.Uint64("agent_id", agentID), zap.Error(err))
		return nil, err
	}

	metrics.AllocationsTotal.WithLabelValues("allocated").Inc()
	u.logger.Info("case allocated",
		zap.Uint64("agent_id", dto.AgentID),
		zap.Uint64("customer_id", dto.CustomerID),
		zap.Uint64("case_id", dto.CaseID),
	)
	if perr := u.pub.Publish(ctx, events.New(events.TypeCaseAllocated, strconv.FormatUint(dto.CustomerID, 10), dto)); perr != nil {
		u.logger.Warn("publish case.allocated failed", zap.Uint64("case_id", dto.CaseID), zap.Error(perr))
	}
	return dto, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, customer.ErrNoneAvailable):
		return "exhausted"
	case errors.Is(err, workcase.ErrActiveCaseExists):
		return "conflict"
	case errors.Is(err, agent.ErrNotFound), errors.Is(err, campaign.ErrNotMember):
		return "not_found"
	}
	return "error"
}

func toDTO(c *customer.Customer, wc *workcase.Case) *AllocationDTO {
	return &AllocationDTO{
		CaseID:            wc.ID,
		AgentID:           wc.AgentID,
		CustomerID:        c.ID,
		CampaignID:        c.CampaignID,
		Name:              c.Name,
		Phone:             c.Phone,
		LoanRef:           c.LoanRef,
		OutstandingAmount: c.OutstandingAmount,
		OverdueAmount:     c.OverdueAmount,
		DPDBucket:         c.DPDBucket,
		Status:            string(wc.Status),
		AllocatedAt:       wc.CreatedAt,
	}
}
