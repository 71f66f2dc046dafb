package mysql

import (
	"context"

	"collections-backend/internal/domain/campaign"

	"gorm.io/gorm"
)

type CampaignRepository struct{ db *gorm.DB }

func NewCampaignRepository(db *gorm.DB) *CampaignRepository { return &CampaignRepository{db: db} }

func (r *CampaignRepository) GetByID(ctx context.Context, id uint64) (*campaign.Campaign, error) {
	var out campaign.Campaign
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CampaignRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*campaign.Campaign, error) {
	var out campaign.Campaign
	res := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CampaignRepository) AgentIDs(ctx context.Context, campaignID uint64) ([]uint64, error) {
	var ids []uint64
	res := r.db.WithContext(ctx).
		Model(&campaign.Membership{}).
		Joins("JOIN agents ON agents.id = campaign_agents.agent_id").
		Where("campaign_agents.campaign_id = ? AND agents.is_active = ?", campaignID, true).
		Order("campaign_agents.agent_id ASC").
		Pluck("campaign_agents.agent_id", &ids)
	return ids, res.Error
}

func (r *CampaignRepository) ActiveCampaignIDsForAgent(ctx context.Context, agentID uint64) ([]uint64, error) {
	var ids []uint64
	res := r.db.WithContext(ctx).
		Model(&campaign.Membership{}).
		Joins("JOIN campaigns ON campaigns.id = campaign_agents.campaign_id").
		Where("campaign_agents.agent_id = ? AND campaigns.is_active = ?", agentID, true).
		Order("campaign_agents.campaign_id ASC").
		Pluck("campaign_agents.campaign_id", &ids)
	return ids, res.Error
}

func (r *CampaignRepository) IsMember(ctx context.Context, campaignID, agentID uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&campaign.Membership{}).
		Where("campaign_id = ? AND agent_id = ?", campaignID, agentID).
		Count(&n)
	return n > 0, res.Error
}
