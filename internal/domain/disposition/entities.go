package disposition

import (
	"time"

	"github.com/shopspring/decimal"
)

// Disposition is the live, current outcome recorded against a case.
type Disposition struct {
	ID            uint64           `gorm:"primaryKey;column:id" json:"id"`
	CaseID        uint64           `gorm:"column:case_id;not null;index:idx_dispositions_case" json:"case_id"`
	CustomerID    uint64           `gorm:"column:customer_id;not null;index:idx_dispositions_customer" json:"customer_id"`
	AgentID       uint64           `gorm:"column:agent_id;not null" json:"agent_id"`
	Code          Code             `gorm:"column:code;size:8;not null" json:"code"`
	PromiseAmount *decimal.Decimal `gorm:"column:promise_amount;type:decimal(18,2)" json:"promise_amount,omitempty"`
	FollowUpDate  *time.Time       `gorm:"column:follow_up_date;type:date" json:"follow_up_date,omitempty"`
	FollowUpTime  *string          `gorm:"column:follow_up_time;size:5" json:"follow_up_time,omitempty"`
	PaymentDate   *time.Time       `gorm:"column:payment_date;type:date" json:"payment_date,omitempty"`
	PaymentTime   *string          `gorm:"column:payment_time;size:5" json:"payment_time,omitempty"`
	Target        *string          `gorm:"column:target;size:32" json:"target,omitempty"`
	Remarks       string           `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (Disposition) TableName() string { return "dispositions" }

// New derives the stored columns from a payload. Columns the payload's
// category does not carry stay NULL.
func New(caseID, customerID, agentID uint64, p Payload, remarks string) *Disposition {
	d := &Disposition{
		CaseID:     caseID,
		CustomerID: customerID,
		AgentID:    agentID,
		Code:       p.Code(),
		Remarks:    remarks,
	}
	switch v := p.(type) {
	case Promise:
		amt, date := v.Amount, v.FollowUpDate
		d.PromiseAmount = &amt
		d.FollowUpDate = &date
		d.FollowUpTime = v.FollowUpTime
		d.Target = v.Target
	case Callback:
		date, clock := v.FollowUpDate, v.FollowUpTime
		d.FollowUpDate = &date
		d.FollowUpTime = &clock
	case Payment:
		amt := v.Amount
		d.PromiseAmount = &amt
		d.PaymentDate = v.PaymentDate
		d.PaymentTime = v.PaymentTime
	}
	return d
}

// EditHistory is an append-only snapshot of a superseded disposition.
type EditHistory struct {
	ID                    uint64           `gorm:"primaryKey;column:id" json:"id"`
	OriginalDispositionID uint64           `gorm:"column:original_disposition_id;not null" json:"original_disposition_id"`
	CaseID                uint64           `gorm:"column:case_id;not null;index:idx_disposition_history_case" json:"case_id"`
	CustomerID            uint64           `gorm:"column:customer_id;not null;index:idx_disposition_history_customer" json:"customer_id"`
	AgentID               uint64           `gorm:"column:agent_id;not null" json:"agent_id"`
	Code                  Code             `gorm:"column:code;size:8;not null" json:"code"`
	PromiseAmount         *decimal.Decimal `gorm:"column:promise_amount;type:decimal(18,2)" json:"promise_amount,omitempty"`
	FollowUpDate          *time.Time       `gorm:"column:follow_up_date;type:date" json:"follow_up_date,omitempty"`
	FollowUpTime          *string          `gorm:"column:follow_up_time;size:5" json:"follow_up_time,omitempty"`
	PaymentDate           *time.Time       `gorm:"column:payment_date;type:date" json:"payment_date,omitempty"`
	PaymentTime           *string          `gorm:"column:payment_time;size:5" json:"payment_time,omitempty"`
	Target                *string          `gorm:"column:target;size:32" json:"target,omitempty"`
	Remarks               string           `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt             time.Time        `gorm:"column:created_at;not null" json:"created_at"`
	ArchivedAt            time.Time        `gorm:"column:archived_at;not null" json:"archived_at"`
	ArchivedBy            uint64           `gorm:"column:archived_by;not null" json:"archived_by"`
}

func (EditHistory) TableName() string { return "disposition_edit_history" }

// Snapshot copies d verbatim, stamped with who superseded it and when.
func (d *Disposition) Snapshot(by uint64, at time.Time) *EditHistory {
	return &EditHistory{
		OriginalDispositionID: d.ID,
		CaseID:                d.CaseID,
		CustomerID:            d.CustomerID,
		AgentID:               d.AgentID,
		Code:                  d.Code,
		PromiseAmount:         d.PromiseAmount,
		FollowUpDate:          d.FollowUpDate,
		FollowUpTime:          d.FollowUpTime,
		PaymentDate:           d.PaymentDate,
		PaymentTime:           d.PaymentTime,
		Target:                d.Target,
		Remarks:               d.Remarks,
		CreatedAt:             d.CreatedAt,
		ArchivedAt:            at,
		ArchivedBy:            by,
	}
}
