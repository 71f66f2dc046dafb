package campaign

import (
	"time"

	"collections-backend/internal/pkg/xerrors"
)

var (
	ErrNotFound = xerrors.New(xerrors.ErrNotFound, "campaign not found")
	ErrInactive = xerrors.New(xerrors.ErrConflict, "campaign is not active")
	// ErrNotMember hides campaigns the agent is not rostered on.
	ErrNotMember = xerrors.New(xerrors.ErrNotFound, "agent is not a member of the campaign")
)

type Campaign struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:128;not null" json:"name"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Campaign) TableName() string { return "campaigns" }

// Membership is one row of a campaign roster.
type Membership struct {
	CampaignID uint64    `gorm:"primaryKey;column:campaign_id;autoIncrement:false" json:"campaign_id"`
	AgentID    uint64    `gorm:"primaryKey;column:agent_id;autoIncrement:false;index:idx_campaign_agents_agent" json:"agent_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Membership) TableName() string { return "campaign_agents" }

var (
	ErrNoAgents           = xerrors.New(xerrors.ErrExhausted, "campaign has no active agents")
	ErrNothingToDo        = xerrors.New(xerrors.ErrExhausted, "no eligible customers in campaign")
	ErrInsufficientVolume = xerrors.New(xerrors.ErrExhausted, "not enough unassigned customers to give every agent one")
)
