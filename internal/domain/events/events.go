package events

import (
	"context"
	"time"

	"collections-backend/pkg/id"
)

const (
	TypeCaseAllocated       = "case.allocated"
	TypeDispositionRecorded = "disposition.recorded"
	TypeCampaignDistributed = "campaign.distributed"
	TypeCampaignRechurned   = "campaign.rechurned"
)

// Event is published after the transaction that produced it commits.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, ...Event) error { return nil }

// New stamps an event with a fresh id and the current UTC time.
func New(typ, key string, data any) Event {
	return Event{ID: id.NewID32(), Type: typ, Key: key, OccurredAt: time.Now().UTC(), Data: data}
}
