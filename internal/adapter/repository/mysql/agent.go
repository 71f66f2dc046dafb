package mysql

import (
	"context"

	"collections-backend/internal/domain/agent"

	"gorm.io/gorm"
)

type AgentRepository struct{ db *gorm.DB }

func NewAgentRepository(db *gorm.DB) *AgentRepository { return &AgentRepository{db: db} }

func (r *AgentRepository) GetByID(ctx context.Context, id uint64) (*agent.Agent, error) {
	var out agent.Agent
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AgentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*agent.Agent, error) {
	var out agent.Agent
	res := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).First(&out)
	return &out, res.Error
}
