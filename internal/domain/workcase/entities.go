package workcase

import (
	"time"

	"collections-backend/internal/pkg/xerrors"
)

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFollowUp   Status = "FOLLOW_UP"
	StatusDone       Status = "DONE"
)

var (
	ErrNotFound         = xerrors.New(xerrors.ErrNotFound, "case not found")
	ErrActiveCaseExists = xerrors.New(xerrors.ErrConflict, "agent already holds an active case")
)

// Case links one customer to one agent for one allocation cycle.
type Case struct {
	ID                   uint64     `gorm:"primaryKey;column:id" json:"id"`
	CustomerID           uint64     `gorm:"column:customer_id;not null;index:idx_cases_customer" json:"customer_id"`
	AgentID              uint64     `gorm:"column:agent_id;not null;index:idx_cases_agent_active,priority:1" json:"agent_id"`
	Status               Status     `gorm:"column:status;type:varchar(16);not null;default:'NEW'" json:"status"`
	IsActive             bool       `gorm:"column:is_active;not null;index:idx_cases_agent_active,priority:2" json:"is_active"`
	FirstCallAt          *time.Time `gorm:"column:first_call_at" json:"first_call_at,omitempty"`
	LastCallAt           *time.Time `gorm:"column:last_call_at" json:"last_call_at,omitempty"`
	FollowUpDate         *time.Time `gorm:"column:follow_up_date;type:date" json:"follow_up_date,omitempty"`
	FollowUpTime         *string    `gorm:"column:follow_up_time;size:5" json:"follow_up_time,omitempty"`
	CurrentDispositionID *uint64    `gorm:"column:current_disposition_id" json:"current_disposition_id,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Case) TableName() string { return "cases" }

// Open returns a fresh active case in status NEW.
func Open(customerID, agentID uint64) *Case {
	return &Case{CustomerID: customerID, AgentID: agentID, Status: StatusNew, IsActive: true}
}

// Touch records a contact at now. FirstCallAt is only ever set once.
func (c *Case) Touch(now time.Time) {
	if c.FirstCallAt == nil {
		first := now
		c.FirstCallAt = &first
	}
	last := now
	c.LastCallAt = &last
}

// Reset returns the case to NEW without keeping it in flight.
func (c *Case) Reset() {
	c.Status = StatusNew
	c.IsActive = false
}
