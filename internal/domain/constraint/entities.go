package constraint

import (
	"time"

	"collections-backend/internal/domain/disposition"
)

type Type string

const (
	TypeOncePTP Type = "ONCE_PTP"
	TypeOncePRT Type = "ONCE_PRT"
)

// OnceConstraint records that a one-time rule fired for a customer.
// It stays active until the customer's case is resolved to DONE.
type OnceConstraint struct {
	ID            uint64     `gorm:"primaryKey;column:id" json:"id"`
	CustomerID    uint64     `gorm:"column:customer_id;not null;index:idx_once_constraints_active,priority:1" json:"customer_id"`
	Type          Type       `gorm:"column:type;size:16;not null;index:idx_once_constraints_active,priority:2" json:"type"`
	DispositionID uint64     `gorm:"column:disposition_id;not null" json:"disposition_id"`
	IsActive      bool       `gorm:"column:is_active;not null;index:idx_once_constraints_active,priority:3" json:"is_active"`
	TriggeredAt   time.Time  `gorm:"column:triggered_at;not null" json:"triggered_at"`
	ReleasedAt    *time.Time `gorm:"column:released_at" json:"released_at,omitempty"`
}

func (OnceConstraint) TableName() string { return "once_constraints" }

// TriggeredBy maps a disposition code to the constraint it fires.
func TriggeredBy(c disposition.Code) (Type, bool) {
	switch c {
	case disposition.CodePTP:
		return TypeOncePTP, true
	case disposition.CodePRT:
		return TypeOncePRT, true
	}
	return "", false
}
