package constraint

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "collections-backend/internal/domain/constraint"
	"collections-backend/internal/domain/customer"
	"collections-backend/internal/testutil/customermock"

	"gorm.io/gorm"
)

type stubConstraints struct {
	domain.Repository
	rows []domain.OnceConstraint
	err  error
}

func (s *stubConstraints) ListActive(context.Context, uint64) ([]domain.OnceConstraint, error) {
	return s.rows, s.err
}

func TestListActive(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	found := &customermock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*customer.Customer, error) {
		return &customer.Customer{ID: id}, nil
	}}

	tests := []struct {
		name      string
		customers *customermock.Repo
		repo      *stubConstraints
		wantErr   error
		wantLen   int
	}{
		{
			name:      "lists active",
			customers: found,
			repo: &stubConstraints{rows: []domain.OnceConstraint{
				{Type: domain.TypeOncePTP, DispositionID: 4, TriggeredAt: at, IsActive: true},
			}},
			wantLen: 1,
		},
		{
			name:      "none active is an empty list",
			customers: found,
			repo:      &stubConstraints{},
			wantLen:   0,
		},
		{
			name: "unknown customer",
			customers: &customermock.Repo{GetByIDFn: func(context.Context, uint64) (*customer.Customer, error) {
				return nil, gorm.ErrRecordNotFound
			}},
			repo:    &stubConstraints{},
			wantErr: customer.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewUsecase(tt.customers, tt.repo).ListActive(context.Background(), 7)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListActive: %v", err)
			}
			if out.Constraints == nil || len(out.Constraints) != tt.wantLen {
				t.Fatalf("constraints = %+v, want %d", out.Constraints, tt.wantLen)
			}
			if tt.wantLen == 1 && (out.Constraints[0].Type != "ONCE_PTP" || !out.Constraints[0].TriggeredAt.Equal(at)) {
				t.Fatalf("unexpected dto %+v", out.Constraints[0])
			}
		})
	}
}
