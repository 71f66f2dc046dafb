package uowmock

import (
	"context"
	"errors"

	"collections-backend/internal/domain/agent"
	"collections-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinAgentTxFn func(ctx context.Context, agentID uint64, fn func(r uow.Repos, a *agent.Agent) error) error
}

func New() *UoW { return &UoW{} }

// Passing runs fn directly against r, locking nothing. A nil agent
// simulates a missing agent row.
func Passing(r uow.Repos, a *agent.Agent) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(r) },
		WithinAgentTxFn: func(_ context.Context, _ uint64, fn func(uow.Repos, *agent.Agent) error) error {
			if a == nil {
				return agent.ErrNotFound
			}
			return fn(r, a)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinAgentTx(fn func(context.Context, uint64, func(uow.Repos, *agent.Agent) error) error) *UoW {
	m.WithinAgentTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinAgentTx(ctx context.Context, agentID uint64, fn func(r uow.Repos, a *agent.Agent) error) error {
	if m.WithinAgentTxFn != nil {
		return m.WithinAgentTxFn(ctx, agentID, fn)
	}
	return errUnimplemented
}
