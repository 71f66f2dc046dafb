package constraint

import (
	"context"
	"errors"

	domain "collections-backend/internal/domain/constraint"
	"collections-backend/internal/domain/customer"

	"gorm.io/gorm"
)

type Usecase struct {
	customers   customer.Repository
	constraints domain.Repository
}

func NewUsecase(customers customer.Repository, constraints domain.Repository) *Usecase {
	return &Usecase{customers: customers, constraints: constraints}
}

// ListActive returns the once-constraints currently in force for a customer.
func (u *Usecase) ListActive(ctx context.Context, customerID uint64) (*ListDTO, error) {
	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}

	rows, err := u.constraints.ListActive(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := &ListDTO{CustomerID: customerID, Constraints: make([]ConstraintDTO, 0, len(rows))}
	for _, c := range rows {
		out.Constraints = append(out.Constraints, ConstraintDTO{
			Type:          string(c.Type),
			DispositionID: c.DispositionID,
			TriggeredAt:   c.TriggeredAt,
		})
	}
	return out, nil
}
