package customer

import (
	"time"

	"collections-backend/internal/pkg/xerrors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = xerrors.New(xerrors.ErrNotFound, "customer not found")
	ErrNoneAvailable   = xerrors.New(xerrors.ErrExhausted, "no unassigned customer available")
	ErrAlreadyAssigned = xerrors.New(xerrors.ErrConflict, "customer already assigned")
)

// Customer is one debtor-loan-campaign row created by bulk ingestion.
// AssignedAgentID == nil means the record sits in the unassigned pool.
type Customer struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"id"`
	Name              string          `gorm:"column:name;size:128;not null" json:"name"`
	Phone             string          `gorm:"column:phone;size:32;not null" json:"phone"`
	LoanRef           string          `gorm:"column:loan_ref;size:64;not null" json:"loan_ref"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(18,2);not null" json:"outstanding_amount"`
	OverdueAmount     decimal.Decimal `gorm:"column:overdue_amount;type:decimal(18,2);not null" json:"overdue_amount"`
	DPDBucket         string          `gorm:"column:dpd_bucket;size:16" json:"dpd_bucket"`
	CampaignID        uint64          `gorm:"column:campaign_id;not null;index:idx_customers_pool,priority:1" json:"campaign_id"`
	IsActive          bool            `gorm:"column:is_active;not null" json:"is_active"`
	AssignedAgentID   *uint64         `gorm:"column:assigned_agent_id;index:idx_customers_pool,priority:2" json:"assigned_agent_id,omitempty"`
	CurrentCaseID     *uint64         `gorm:"column:current_case_id" json:"current_case_id,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

// AssignedTo reports whether the record is currently owned by agentID.
func (c *Customer) AssignedTo(agentID uint64) bool {
	return c.AssignedAgentID != nil && *c.AssignedAgentID == agentID
}
