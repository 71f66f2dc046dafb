package disposition

import "context"

type Repository interface {
	Create(ctx context.Context, d *Disposition) error
	GetByID(ctx context.Context, id uint64) (*Disposition, error)
	Delete(ctx context.Context, id uint64) error
	Archive(ctx context.Context, h *EditHistory) error

	// Newest first.
	ListByCustomer(ctx context.Context, customerID uint64) ([]Disposition, error)
	ListHistoryByCustomer(ctx context.Context, customerID uint64) ([]EditHistory, error)
}
