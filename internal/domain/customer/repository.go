package customer

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint64) (*Customer, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Customer, error)

	// Oldest unassigned active customer across campaignIDs, locked with
	// SKIP LOCKED so concurrent allocators never pick the same row.
	NextUnassignedForUpdate(ctx context.Context, campaignIDs []uint64) (*Customer, error)

	// All unassigned active customers of a campaign, oldest first, locked.
	ListUnassignedForUpdate(ctx context.Context, campaignID uint64) ([]Customer, error)

	// Assign sets the owner only if the row is still unassigned.
	Assign(ctx context.Context, id, agentID uint64) error
	// AssignMany writes the owner for every id, regardless of current owner.
	AssignMany(ctx context.Context, ids []uint64, agentID uint64) (int64, error)
	// Release returns the customers to the unassigned pool.
	Release(ctx context.Context, ids []uint64) (int64, error)

	Save(ctx context.Context, c *Customer) error
}
