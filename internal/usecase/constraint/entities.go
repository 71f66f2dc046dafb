package constraint

import "time"

type ConstraintDTO struct {
	Type          string    `json:"type"`
	DispositionID uint64    `json:"disposition_id"`
	TriggeredAt   time.Time `json:"triggered_at"`
}

type ListDTO struct {
	CustomerID  uint64          `json:"customer_id"`
	Constraints []ConstraintDTO `json:"constraints"`
}
