package disposition

import (
	domain "collections-backend/internal/domain/disposition"
)

type SubmitInput struct {
	CustomerID uint64
	AgentID    uint64
	Code       string
	Fields     domain.Fields
	IsEdit     bool
	Remarks    string
}

type SubmitResult struct {
	CaseID         uint64 `json:"case_id"`
	DispositionID  uint64 `json:"disposition_id"`
	CustomerID     uint64 `json:"customer_id"`
	AgentID        uint64 `json:"agent_id"`
	Code           string `json:"code"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	AllocateNext   bool   `json:"allocate_next"`
	Takeover       bool   `json:"takeover"`
	Edited         bool   `json:"edited"`
}

// HistoryDTO lists the live dispositions and the superseded snapshots of
// one customer, newest first.
type HistoryDTO struct {
	CustomerID   uint64               `json:"customer_id"`
	Dispositions []domain.Disposition `json:"dispositions"`
	Edits        []domain.EditHistory `json:"edits"`
}
