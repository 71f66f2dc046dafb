package disposition

import (
	"context"
	"errors"
	"strconv"
	"time"

	"collections-backend/internal/domain/agent"
	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/constraint"
	"collections-backend/internal/domain/customer"
	domain "collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/events"
	"collections-backend/internal/domain/uow"
	"collections-backend/internal/domain/workcase"
	"collections-backend/internal/infrastructure/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	uow          uow.UnitOfWork
	customers    customer.Repository
	dispositions domain.Repository
	pub          events.Publisher
	logger       *zap.Logger
	mode         domain.Mode
	now          func() time.Time
}

// NewUsecase wires the processor. customers and dispositions serve the
// read-only History lookup; everything else goes through tx.
func NewUsecase(tx uow.UnitOfWork, customers customer.Repository, dispositions domain.Repository, pub events.Publisher, logger *zap.Logger, mode domain.Mode) *Usecase {
	if pub == nil {
		pub = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{
		uow:          tx,
		customers:    customers,
		dispositions: dispositions,
		pub:          pub,
		logger:       logger,
		mode:         mode,
		now:          time.Now,
	}
}

// Submit records a disposition for the agent's case on the customer and
// moves the case to the status the code resolves to.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	code, err := domain.ParseCode(in.Code)
	if err != nil {
		return nil, err
	}
	payload, err := domain.Build(code, in.Fields, u.mode)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	var (
		res      *SubmitResult
		released int64
	)

	err = u.uow.WithinAgentTx(ctx, in.AgentID, func(r uow.Repos, a *agent.Agent) error {
		if !a.IsActive {
			return agent.ErrNotFound
		}

		c, err := r.Customers.GetByIDForUpdate(ctx, in.CustomerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !c.IsActive {
			return customer.ErrNotFound
		}
		member, err := r.Campaigns.IsMember(ctx, c.CampaignID, a.ID)
		if err != nil {
			return err
		}
		if !member {
			return campaign.ErrNotMember
		}

		takeover := !c.AssignedTo(a.ID)
		wc, err := u.currentCase(ctx, r, c, a.ID)
		if err != nil {
			return err
		}

		var superseded *domain.Disposition
		if in.IsEdit {
			if superseded, err = u.archiveCurrent(ctx, r, wc, a.ID, now); err != nil {
				return err
			}
		}

		d := domain.New(wc.ID, c.ID, a.ID, payload, in.Remarks)
		d.CreatedAt = now
		if err := r.Dispositions.Create(ctx, d); err != nil {
			return err
		}
		if t, ok := constraint.TriggeredBy(code); ok {
			// an edit keeps the constraint its predecessor fired; other
			// types stay on the archived disposition
			if superseded != nil {
				if err := r.Constraints.Repoint(ctx, superseded.ID, d.ID, t); err != nil {
					return err
				}
			}
			if err := u.trigger(ctx, r, c.ID, t, d.ID, now); err != nil {
				return err
			}
		}

		prev := wc.Status
		next := domain.ResultStatus(code)
		wc.Status = next
		wc.IsActive = false
		wc.Touch(now)
		wc.FollowUpDate, wc.FollowUpTime = domain.FollowUp(payload)
		wc.CurrentDispositionID = &d.ID
		if err := r.Cases.Save(ctx, wc); err != nil {
			return err
		}

		changed := prev != next
		if changed && next == workcase.StatusDone {
			if released, err = r.Constraints.DeactivateAll(ctx, c.ID, now); err != nil {
				return err
			}
		}

		res = &SubmitResult{
			CaseID:         wc.ID,
			DispositionID:  d.ID,
			CustomerID:     c.ID,
			AgentID:        a.ID,
			Code:           code.String(),
			PreviousStatus: string(prev),
			Status:         string(next),
			AllocateNext:   changed,
			Takeover:       takeover,
			Edited:         superseded != nil,
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = agent.ErrNotFound
	}
	if err != nil {
		u.logger.Debug("disposition rejected",
			zap.Uint64("agent_id", in.AgentID),
			zap.Uint64("customer_id", in.CustomerID),
			zap.String("code", code.String()),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.DispositionsTotal.WithLabelValues(res.Code, res.Status, strconv.FormatBool(res.Edited)).Inc()
	if released > 0 {
		metrics.ConstraintsReleasedTotal.Add(float64(released))
	}
	u.logger.Info("disposition recorded",
		zap.Uint64("agent_id", res.AgentID),
		zap.Uint64("customer_id", res.CustomerID),
		zap.Uint64("case_id", res.CaseID),
		zap.String("code", res.Code),
		zap.String("from", res.PreviousStatus),
		zap.String("to", res.Status),
		zap.Bool("takeover", res.Takeover),
		zap.Bool("edit", res.Edited),
		zap.Int64("constraints_released", released),
	)
	if perr := u.pub.Publish(ctx, events.New(events.TypeDispositionRecorded, strconv.FormatUint(res.CustomerID, 10), res)); perr != nil {
		u.logger.Warn("publish disposition.recorded failed", zap.Uint64("case_id", res.CaseID), zap.Error(perr))
	}
	return res, nil
}

// currentCase returns the case the agent is working for c. The customer's
// current case is reused when it belongs to the agent; otherwise the agent
// takes the customer over on a fresh case.
func (u *Usecase) currentCase(ctx context.Context, r uow.Repos, c *customer.Customer, agentID uint64) (*workcase.Case, error) {
	if c.CurrentCaseID != nil {
		wc, err := r.Cases.GetByIDForUpdate(ctx, *c.CurrentCaseID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// dangling pointer, open a fresh case below
		case err != nil:
			return nil, err
		case wc.AgentID == agentID && c.AssignedTo(agentID):
			return wc, nil
		case wc.IsActive:
			// previous holder loses the in-flight case
			wc.IsActive = false
			if err := r.Cases.Save(ctx, wc); err != nil {
				return nil, err
			}
		}
	}

	wc := workcase.Open(c.ID, agentID)
	if err := r.Cases.Create(ctx, wc); err != nil {
		return nil, err
	}
	c.AssignedAgentID = &agentID
	c.CurrentCaseID = &wc.ID
	if err := r.Customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return wc, nil
}

// archiveCurrent moves the case's live disposition into edit history and
// returns it.
func (u *Usecase) archiveCurrent(ctx context.Context, r uow.Repos, wc *workcase.Case, agentID uint64, now time.Time) (*domain.Disposition, error) {
	if wc.CurrentDispositionID == nil {
		return nil, domain.ErrNothingToEdit
	}
	prev, err := r.Dispositions.GetByID(ctx, *wc.CurrentDispositionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNothingToEdit
	}
	if err != nil {
		return nil, err
	}
	// history first, so readers never see the edit without its predecessor
	if err := r.Dispositions.Archive(ctx, prev.Snapshot(agentID, now)); err != nil {
		return nil, err
	}
	if err := r.Dispositions.Delete(ctx, prev.ID); err != nil {
		return nil, err
	}
	return prev, nil
}

func (u *Usecase) trigger(ctx context.Context, r uow.Repos, customerID uint64, t constraint.Type, dispositionID uint64, now time.Time) error {
	_, err := r.Constraints.GetActive(ctx, customerID, t)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	return r.Constraints.Create(ctx, &constraint.OnceConstraint{
		CustomerID:    customerID,
		Type:          t,
		DispositionID: dispositionID,
		IsActive:      true,
		TriggeredAt:   now,
	})
}

// History returns every disposition recorded for the customer, including
// superseded ones.
func (u *Usecase) History(ctx context.Context, customerID uint64) (*HistoryDTO, error) {
	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}
	live, err := u.dispositions.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	edits, err := u.dispositions.ListHistoryByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &HistoryDTO{CustomerID: customerID, Dispositions: live, Edits: edits}, nil
}
