// Package sqlitedb opens an in-memory store with the full schema and
// seeds fixtures for repository and usecase tests.
package sqlitedb

import (
	"strconv"
	"testing"

	"collections-backend/internal/domain/agent"
	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/constraint"
	"collections-backend/internal/domain/customer"
	"collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/workcase"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the core owns, in dependency order.
func Models() []any {
	return []any{
		&agent.Agent{},
		&campaign.Campaign{},
		&campaign.Membership{},
		&customer.Customer{},
		&workcase.Case{},
		&disposition.Disposition{},
		&disposition.EditHistory{},
		&constraint.OnceConstraint{},
	}
}

// Open returns a migrated in-memory DB. A single connection keeps every
// statement on the same memory database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func Agent(t *testing.T, db *gorm.DB, name string) *agent.Agent {
	t.Helper()
	a := &agent.Agent{Name: name, IsActive: true}
	mustCreate(t, db, a)
	return a
}

func Campaign(t *testing.T, db *gorm.DB, name string, agents ...*agent.Agent) *campaign.Campaign {
	t.Helper()
	c := &campaign.Campaign{Name: name, IsActive: true}
	mustCreate(t, db, c)
	for _, a := range agents {
		mustCreate(t, db, &campaign.Membership{CampaignID: c.ID, AgentID: a.ID})
	}
	return c
}

func Customer(t *testing.T, db *gorm.DB, campaignID uint64, name string) *customer.Customer {
	t.Helper()
	c := &customer.Customer{
		Name:              name,
		Phone:             "0800000000",
		LoanRef:           "LN-" + name,
		OutstandingAmount: decimal.NewFromInt(100000),
		OverdueAmount:     decimal.NewFromInt(25000),
		DPDBucket:         "30-60",
		CampaignID:        campaignID,
		IsActive:          true,
	}
	mustCreate(t, db, c)
	return c
}

// Customers seeds n customers named c1..cn.
func Customers(t *testing.T, db *gorm.DB, campaignID uint64, n int) []*customer.Customer {
	t.Helper()
	out := make([]*customer.Customer, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Customer(t, db, campaignID, "c"+strconv.Itoa(i)))
	}
	return out
}

// Deactivate flips is_active off on an already seeded row.
func Deactivate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Model(v).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate %T: %v", v, err)
	}
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

