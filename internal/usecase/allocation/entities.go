package allocation

import (
	"time"

	"github.com/shopspring/decimal"
)

type AllocationDTO struct {
	CaseID            uint64          `json:"case_id"`
	AgentID           uint64          `json:"agent_id"`
	CustomerID        uint64          `json:"customer_id"`
	CampaignID        uint64          `json:"campaign_id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	LoanRef           string          `json:"loan_ref"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	OverdueAmount     decimal.Decimal `json:"overdue_amount"`
	DPDBucket         string          `json:"dpd_bucket"`
	Status            string          `json:"status"`
	AllocatedAt       time.Time       `json:"allocated_at"`
}
