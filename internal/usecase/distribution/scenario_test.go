package distribution

import (
	"context"
	"testing"

	"collections-backend/internal/adapter/repository/mysql"
	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/customer"
	domain "collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/workcase"
	"collections-backend/internal/testutil/sqlitedb"
	dispositionuc "collections-backend/internal/usecase/disposition"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countUnassigned(t *testing.T, db *gorm.DB, campaignID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&customer.Customer{}).
		Where("campaign_id = ? AND assigned_agent_id IS NULL", campaignID).Count(&n).Error)
	return n
}

func TestDistribute_LeavesRemainderUnassigned(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	a := sqlitedb.Agent(t, db, "a")
	b := sqlitedb.Agent(t, db, "b")
	c := sqlitedb.Agent(t, db, "c")
	camp := sqlitedb.Campaign(t, db, "jan", a, b, c)
	cs := sqlitedb.Customers(t, db, camp.ID, 10)

	res, err := NewUsecase(mysql.NewGormUoW(db), nil, nil).Distribute(ctx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Distributed)
	assert.Equal(t, 3, res.PerAgent)
	assert.Equal(t, 1, res.Remainder)
	assert.EqualValues(t, 1, countUnassigned(t, db, camp.ID))

	var last customer.Customer
	require.NoError(t, db.First(&last, cs[9].ID).Error)
	assert.Nil(t, last.AssignedAgentID, "the newest record is the remainder")

	var first customer.Customer
	require.NoError(t, db.First(&first, cs[0].ID).Error)
	assert.True(t, first.AssignedTo(a.ID), "contiguous chunks start with the lowest agent id")

	var cases int64
	require.NoError(t, db.Model(&workcase.Case{}).Count(&cases).Error)
	assert.Zero(t, cases, "distribution must not open cases")
}

func TestDistribute_InsufficientVolumeIsAllOrNothing(t *testing.T) {
	db := sqlitedb.Open(t)
	a := sqlitedb.Agent(t, db, "a")
	b := sqlitedb.Agent(t, db, "b")
	c := sqlitedb.Agent(t, db, "c")
	camp := sqlitedb.Campaign(t, db, "jan", a, b, c)
	sqlitedb.Customers(t, db, camp.ID, 2)

	_, err := NewUsecase(mysql.NewGormUoW(db), nil, nil).Distribute(context.Background(), camp.ID)
	assert.ErrorIs(t, err, campaign.ErrInsufficientVolume)
	assert.EqualValues(t, 2, countUnassigned(t, db, camp.ID))
}

func TestRechurn_ReturnsStalledCustomersToPool(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	a := sqlitedb.Agent(t, db, "a")
	camp := sqlitedb.Campaign(t, db, "jan", a)
	cs := sqlitedb.Customers(t, db, camp.ID, 3)

	tx := mysql.NewGormUoW(db)
	disp := dispositionuc.NewUsecase(tx, mysql.NewCustomerRepository(db), mysql.NewDispositionRepository(db), nil, nil, domain.Strict)
	submit := func(customerID uint64, code string, f domain.Fields) {
		_, err := disp.Submit(ctx, dispositionuc.SubmitInput{CustomerID: customerID, AgentID: a.ID, Code: code, Fields: f})
		require.NoError(t, err)
	}
	paid := decimal.NewFromInt(1000)
	submit(cs[0].ID, "RTP", domain.Fields{})
	submit(cs[1].ID, "RNR", domain.Fields{})
	submit(cs[2].ID, "PIF", domain.Fields{Amount: &paid})

	uc := NewUsecase(tx, nil, nil)

	res, err := uc.Rechurn(ctx, camp.ID, RechurnInput{Codes: []string{"rtp"}})
	require.NoError(t, err)
	assert.Equal(t, []uint64{cs[0].ID}, res.CustomerIDs)

	res, err = uc.Rechurn(ctx, camp.ID, RechurnInput{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{cs[1].ID}, res.CustomerIDs, "DONE customers are not stalled")

	_, err = uc.Rechurn(ctx, camp.ID, RechurnInput{})
	assert.ErrorIs(t, err, campaign.ErrNothingToDo)

	var got customer.Customer
	require.NoError(t, db.First(&got, cs[0].ID).Error)
	assert.Nil(t, got.AssignedAgentID)
	require.NotNil(t, got.CurrentCaseID)

	var wc workcase.Case
	require.NoError(t, db.First(&wc, *got.CurrentCaseID).Error)
	assert.Equal(t, workcase.StatusNew, wc.Status)
	assert.False(t, wc.IsActive)

	var kept int64
	require.NoError(t, db.Model(&domain.Disposition{}).Where("customer_id = ?", cs[0].ID).Count(&kept).Error)
	assert.EqualValues(t, 1, kept, "history survives a rechurn")
}

func TestRechurn_SubsetOfCustomers(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	a := sqlitedb.Agent(t, db, "a")
	camp := sqlitedb.Campaign(t, db, "jan", a)
	cs := sqlitedb.Customers(t, db, camp.ID, 2)

	tx := mysql.NewGormUoW(db)
	disp := dispositionuc.NewUsecase(tx, mysql.NewCustomerRepository(db), mysql.NewDispositionRepository(db), nil, nil, domain.Strict)
	for _, c := range cs {
		_, err := disp.Submit(ctx, dispositionuc.SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "VOI"})
		require.NoError(t, err)
	}

	res, err := NewUsecase(tx, nil, nil).Rechurn(ctx, camp.ID, RechurnInput{CustomerIDs: []uint64{cs[1].ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rechurned)
	assert.EqualValues(t, 1, countUnassigned(t, db, camp.ID))
}
