package agent

import (
	"context"
	"time"

	"collections-backend/internal/pkg/xerrors"
)

var ErrNotFound = xerrors.New(xerrors.ErrNotFound, "agent not found")

// Agent is maintained by the user-management side; the core only reads it
// and locks its row to serialise per-agent work.
type Agent struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:128;not null" json:"name"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Agent) TableName() string { return "agents" }

type Repository interface {
	GetByID(ctx context.Context, id uint64) (*Agent, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Agent, error)
}
