package distribution

import (
	"context"
	"errors"
	"strconv"

	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/events"
	"collections-backend/internal/domain/uow"
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

// lockCampaign loads and locks the campaign row for the rest of the tx.
func lockCampaign(ctx context.Context, r uow.Repos, id uint64) (*campaign.Campaign, error) {
	c, err := r.Campaigns.GetByIDForUpdate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, campaign.ErrNotFound
	}
	return c, err
}

// Distribute splits the campaign's unassigned pool evenly across its
// active agents. It never creates cases.
func (u *Usecase) Distribute(ctx context.Context, campaignID uint64) (*DistributeResult, error) {
	var res *DistributeResult

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		camp, err := lockCampaign(ctx, r, campaignID)
		if err != nil {
			return err
		}
		if !camp.IsActive {
			return campaign.ErrInactive
		}

		agentIDs, err := r.Campaigns.AgentIDs(ctx, camp.ID)
		if err != nil {
			return err
		}
		unassigned, err := r.Customers.ListUnassignedForUpdate(ctx, camp.ID)
		if err != nil {
			return err
		}
		pool := make([]uint64, 0, len(unassigned))
		for _, c := range unassigned {
			pool = append(pool, c.ID)
		}

		shares, rest, err := campaign.Split(agentIDs, pool)
		if err != nil {
			return err
		}

		res = &DistributeResult{CampaignID: camp.ID, Remainder: len(rest), PerAgent: len(shares[0].CustomerIDs)}
		for _, s := range shares {
			if _, err := r.Customers.AssignMany(ctx, s.CustomerIDs, s.AgentID); err != nil {
				return err
			}
			res.Distributed += len(s.CustomerIDs)
			res.Shares = append(res.Shares, AgentShare{AgentID: s.AgentID, Count: len(s.CustomerIDs)})
		}
		return nil
	})
	if err != nil {
		u.logger.Info("distribution refused", zap.Uint64("campaign_id", campaignID), zap.Error(err))
		return nil, err
	}

	metrics.DistributedCustomersTotal.Add(float64(res.Distributed))
	u.logger.Info("campaign distributed",
		zap.Uint64("campaign_id", res.CampaignID),
		zap.Int("agents", len(res.Shares)),
		zap.Int("per_agent", res.PerAgent),
		zap.Int("distributed", res.Distributed),
		zap.Int("remainder", res.Remainder),
	)
	if perr := u.pub.Publish(ctx, events.New(events.TypeCampaignDistributed, strconv.FormatUint(res.CampaignID, 10), res)); perr != nil {
		u.logger.Warn("publish campaign.distributed failed", zap.Uint64("campaign_id", res.CampaignID), zap.Error(perr))
	}
	return res, nil
}

// Rechurn returns stalled (IN_PROGRESS) customers of the campaign to the
// unassigned pool and resets their cases. Disposition history is kept.
func (u *Usecase) Rechurn(ctx context.Context, campaignID uint64, in RechurnInput) (*RechurnResult, error) {
	codes := make([]string, 0, len(in.Codes))
	for _, raw := range in.Codes {
		c, err := disposition.ParseCode(raw)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c.String())
	}

	var res *RechurnResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		camp, err := lockCampaign(ctx, r, campaignID)
		if err != nil {
			return err
		}

		stalled, err := r.Cases.ListStalledForUpdate(ctx, camp.ID, in.CustomerIDs, codes)
		if err != nil {
			return err
		}
		if len(stalled) == 0 {
			return campaign.ErrNothingToDo
		}

		customerIDs := make([]uint64, 0, len(stalled))
		for i := range stalled {
			wc := &stalled[i]
			wc.Reset()
			if err := r.Cases.Save(ctx, wc); err != nil {
				return err
			}
			customerIDs = append(customerIDs, wc.CustomerID)
		}
		if _, err := r.Customers.Release(ctx, customerIDs); err != nil {
			return err
		}

		res = &RechurnResult{CampaignID: camp.ID, Rechurned: len(customerIDs), CustomerIDs: customerIDs}
		return nil
	})
	if err != nil {
		u.logger.Info("rechurn refused", zap.Uint64("campaign_id", campaignID), zap.Error(err))
		return nil, err
	}

	metrics.RechurnedCustomersTotal.Add(float64(res.Rechurned))
	u.logger.Info("campaign rechurned",
		zap.Uint64("campaign_id", res.CampaignID),
		zap.Int("rechurned", res.Rechurned),
		zap.Strings("codes", codes),
	)
	if perr := u.pub.Publish(ctx, events.New(events.TypeCampaignRechurned, strconv.FormatUint(res.CampaignID, 10), res)); perr != nil {
		u.logger.Warn("publish campaign.rechurned failed", zap.Uint64("campaign_id", res.CampaignID), zap.Error(perr))
	}
	return res, nil
}
