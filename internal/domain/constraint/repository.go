package constraint

import (
	"context"
	"time"
)

type Repository interface {
	// gorm.ErrRecordNotFound when the customer has no active constraint of t.
	GetActive(ctx context.Context, customerID uint64, t Type) (*OnceConstraint, error)
	Create(ctx context.Context, c *OnceConstraint) error
	DeactivateAll(ctx context.Context, customerID uint64, at time.Time) (int64, error)
	ListActive(ctx context.Context, customerID uint64) ([]OnceConstraint, error)
	// Repoint moves constraints of type t from a superseded disposition to
	// its replacement.
	Repoint(ctx context.Context, fromDispositionID, toDispositionID uint64, t Type) error
}
