package disposition

import (
	"context"
	"testing"
	"time"

	"collections-backend/internal/adapter/repository/mysql"
	"collections-backend/internal/domain/campaign"
	"collections-backend/internal/domain/constraint"
	"collections-backend/internal/domain/customer"
	domain "collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/workcase"
	"collections-backend/internal/testutil/sqlitedb"
	"collections-backend/internal/usecase/allocation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	alloc *allocation.Usecase
	uc    *Usecase
	clock time.Time
}

func newFixture(t *testing.T, mode domain.Mode) *fixture {
	t.Helper()
	db := sqlitedb.Open(t)
	tx := mysql.NewGormUoW(db)
	f := &fixture{
		db:    db,
		alloc: allocation.NewUsecase(tx, nil, nil),
		uc:    NewUsecase(tx, mysql.NewCustomerRepository(db), mysql.NewDispositionRepository(db), nil, nil, mode),
		clock: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
	f.uc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func text(s string) *string { return &s }

func (f *fixture) caseOf(t *testing.T, id uint64) workcase.Case {
	t.Helper()
	var c workcase.Case
	require.NoError(t, f.db.First(&c, id).Error)
	return c
}

func (f *fixture) assertSingleActivePerAgent(t *testing.T) {
	t.Helper()
	var rows []struct {
		AgentID uint64
		N       int64
	}
	require.NoError(t, f.db.Model(&workcase.Case{}).
		Select("agent_id, COUNT(*) AS n").
		Where("is_active = ?", true).
		Group("agent_id").
		Scan(&rows).Error)
	for _, r := range rows {
		assert.LessOrEqual(t, r.N, int64(1), "agent %d holds %d active cases", r.AgentID, r.N)
	}
}

func TestSubmit_PromiseEditRefusalThenPaidInFull(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")

	alloc, err := f.alloc.AllocateNext(ctx, a.ID)
	require.NoError(t, err)

	// PTP
	res, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "PTP",
		Fields: domain.Fields{Amount: money(5000), FollowUpDate: text("2026-01-15")},
	})
	require.NoError(t, err)
	assert.Equal(t, "FOLLOW_UP", res.Status)
	assert.True(t, res.AllocateNext)
	assert.False(t, res.Takeover)
	assert.Equal(t, alloc.CaseID, res.CaseID)

	firstCall := f.caseOf(t, res.CaseID).FirstCallAt
	require.NotNil(t, firstCall)

	// PTP edit
	edit, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "PTP", IsEdit: true,
		Fields: domain.Fields{Amount: money(7000), FollowUpDate: text("2026-01-15")},
	})
	require.NoError(t, err)
	assert.True(t, edit.Edited)
	assert.False(t, edit.AllocateNext, "FOLLOW_UP to FOLLOW_UP is not a status change")

	var hist []domain.EditHistory
	require.NoError(t, f.db.Where("case_id = ?", res.CaseID).Find(&hist).Error)
	require.Len(t, hist, 1)
	assert.Equal(t, res.DispositionID, hist[0].OriginalDispositionID)
	require.NotNil(t, hist[0].PromiseAmount)
	assert.True(t, hist[0].PromiseAmount.Equal(decimal.NewFromInt(5000)))

	var live []domain.Disposition
	require.NoError(t, f.db.Where("case_id = ?", res.CaseID).Find(&live).Error)
	require.Len(t, live, 1)
	assert.Equal(t, edit.DispositionID, live[0].ID)
	assert.True(t, live[0].PromiseAmount.Equal(decimal.NewFromInt(7000)))

	var ptp constraint.OnceConstraint
	require.NoError(t, f.db.Where("customer_id = ? AND type = ?", c.ID, constraint.TypeOncePTP).First(&ptp).Error)
	assert.True(t, ptp.IsActive)
	assert.Equal(t, edit.DispositionID, ptp.DispositionID, "constraint follows the edited disposition")

	// RTP
	rtp, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "RTP"})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", rtp.Status)
	assert.True(t, rtp.AllocateNext)

	var active int64
	require.NoError(t, f.db.Model(&constraint.OnceConstraint{}).
		Where("customer_id = ? AND is_active = ?", c.ID, true).Count(&active).Error)
	assert.EqualValues(t, 1, active, "RTP keeps ONCE_PTP")

	// PIF
	pif, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "PIF",
		Fields: domain.Fields{Amount: money(50000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "DONE", pif.Status)
	assert.True(t, pif.AllocateNext)

	require.NoError(t, f.db.First(&ptp, ptp.ID).Error)
	assert.False(t, ptp.IsActive)
	assert.NotNil(t, ptp.ReleasedAt)

	final := f.caseOf(t, res.CaseID)
	require.NotNil(t, final.FirstCallAt)
	assert.True(t, final.FirstCallAt.Equal(*firstCall), "first_call_at must never move")
	assert.True(t, final.LastCallAt.After(*firstCall))
	assert.False(t, final.IsActive)
	assert.Nil(t, final.FollowUpDate)

	f.assertSingleActivePerAgent(t)
}

func TestSubmit_CallbackSchedulesFollowUp(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")
	_, err := f.alloc.AllocateNext(ctx, a.ID)
	require.NoError(t, err)

	res, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "cbc",
		Fields: domain.Fields{FollowUpDate: text("2026-01-20"), FollowUpTime: text("14:30")},
	})
	require.NoError(t, err)

	wc := f.caseOf(t, res.CaseID)
	assert.Equal(t, workcase.StatusFollowUp, wc.Status)
	require.NotNil(t, wc.FollowUpDate)
	require.NotNil(t, wc.FollowUpTime)
	assert.Equal(t, "2026-01-20", wc.FollowUpDate.Format(domain.DateLayout))
	assert.Equal(t, "14:30", *wc.FollowUpTime)
}

func TestSubmit_LenientStoresForbiddenFieldsAsNull(t *testing.T) {
	f := newFixture(t, domain.Lenient)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")

	res, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "RTP",
		Fields: domain.Fields{Amount: money(9000), FollowUpDate: text("2026-01-15"), Target: text("X")},
	})
	require.NoError(t, err)

	var d domain.Disposition
	require.NoError(t, f.db.First(&d, res.DispositionID).Error)
	assert.Nil(t, d.PromiseAmount)
	assert.Nil(t, d.FollowUpDate)
	assert.Nil(t, d.Target)
}

func TestSubmit_FirstCallAtWrittenOnce(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")

	first, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "RNR"})
	require.NoError(t, err)
	before := f.caseOf(t, first.CaseID)

	second, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "LNB"})
	require.NoError(t, err)
	assert.Equal(t, first.CaseID, second.CaseID)
	assert.False(t, second.AllocateNext, "IN_PROGRESS to IN_PROGRESS")

	after := f.caseOf(t, second.CaseID)
	assert.True(t, after.FirstCallAt.Equal(*before.FirstCallAt))
	assert.True(t, after.LastCallAt.After(*before.LastCallAt))
}

func TestSubmit_TakeoverFromAnotherAgent(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	b := sqlitedb.Agent(t, f.db, "bob")
	camp := sqlitedb.Campaign(t, f.db, "jan", a, b)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")

	held, err := f.alloc.AllocateNext(ctx, a.ID)
	require.NoError(t, err)

	res, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: b.ID, Code: "WRN"})
	require.NoError(t, err)
	assert.True(t, res.Takeover)
	assert.NotEqual(t, held.CaseID, res.CaseID)

	old := f.caseOf(t, held.CaseID)
	assert.False(t, old.IsActive, "previous holder's case is released")

	var got customer.Customer
	require.NoError(t, f.db.First(&got, c.ID).Error)
	assert.True(t, got.AssignedTo(b.ID))
	require.NotNil(t, got.CurrentCaseID)
	assert.Equal(t, res.CaseID, *got.CurrentCaseID)

	// alice is free to pull again
	_, err = f.alloc.AllocateNext(ctx, a.ID)
	assert.ErrorIs(t, err, customer.ErrNoneAvailable)

	f.assertSingleActivePerAgent(t)
}

func TestSubmit_EditWithoutPriorDispositionRollsBack(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")
	alloc, err := f.alloc.AllocateNext(ctx, a.ID)
	require.NoError(t, err)

	_, err = f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "RTP", IsEdit: true})
	assert.ErrorIs(t, err, domain.ErrNothingToEdit)

	var n int64
	require.NoError(t, f.db.Model(&domain.Disposition{}).Count(&n).Error)
	assert.Zero(t, n)
	wc := f.caseOf(t, alloc.CaseID)
	assert.True(t, wc.IsActive)
	assert.Equal(t, workcase.StatusNew, wc.Status)
}

func TestSubmit_UnknownCustomerOrAgent(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")

	_, err := f.uc.Submit(ctx, SubmitInput{CustomerID: 999, AgentID: a.ID, Code: "RTP"})
	assert.ErrorIs(t, err, customer.ErrNotFound)

	_, err = f.uc.Submit(ctx, SubmitInput{CustomerID: 1, AgentID: 999, Code: "RTP"})
	assert.ErrorContains(t, err, "agent not found")
}

func TestSubmit_EditAwayFromPromiseLeavesConstraintOnArchivedRow(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")

	ptp, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "PTP",
		Fields: domain.Fields{Amount: money(5000), FollowUpDate: text("2026-01-15")},
	})
	require.NoError(t, err)

	cbc, err := f.uc.Submit(ctx, SubmitInput{
		CustomerID: c.ID, AgentID: a.ID, Code: "CBC", IsEdit: true,
		Fields: domain.Fields{FollowUpDate: text("2026-01-16"), FollowUpTime: text("9:05")},
	})
	require.NoError(t, err)
	assert.True(t, cbc.Edited)

	var once constraint.OnceConstraint
	require.NoError(t, f.db.Where("customer_id = ? AND type = ?", c.ID, constraint.TypeOncePTP).First(&once).Error)
	assert.True(t, once.IsActive, "a fired promise stays fired until DONE")
	assert.Equal(t, ptp.DispositionID, once.DispositionID)

	var hist domain.EditHistory
	require.NoError(t, f.db.Where("case_id = ?", ptp.CaseID).First(&hist).Error)
	assert.Equal(t, once.DispositionID, hist.OriginalDispositionID)

	wc := f.caseOf(t, cbc.CaseID)
	require.NotNil(t, wc.FollowUpTime)
	assert.Equal(t, "09:05", *wc.FollowUpTime)
}

func TestSubmit_AgentOutsideCustomerCampaign(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	outsider := sqlitedb.Agent(t, f.db, "olga")
	jan := sqlitedb.Campaign(t, f.db, "jan", a)
	sqlitedb.Campaign(t, f.db, "feb", outsider)
	c := sqlitedb.Customer(t, f.db, jan.ID, "budi")

	_, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: outsider.ID, Code: "RTP"})
	assert.ErrorIs(t, err, campaign.ErrNotMember)

	var n int64
	require.NoError(t, f.db.Model(&workcase.Case{}).Count(&n).Error)
	assert.Zero(t, n, "no takeover case opened")
	require.NoError(t, f.db.Model(&domain.Disposition{}).Count(&n).Error)
	assert.Zero(t, n)

	var got customer.Customer
	require.NoError(t, f.db.First(&got, c.ID).Error)
	assert.Nil(t, got.AssignedAgentID)
}

func TestSubmit_InactiveCustomer(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")
	sqlitedb.Deactivate(t, f.db, c)

	_, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "RTP"})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestAllocateNext_ExhaustsPoolAfterNCycles(t *testing.T) {
	const n = 4
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	cs := sqlitedb.Customers(t, f.db, camp.ID, n)

	seen := map[uint64]bool{}
	for i := 0; i < n; i++ {
		dto, err := f.alloc.AllocateNext(ctx, a.ID)
		require.NoError(t, err, "cycle %d", i)
		assert.Equal(t, cs[i].ID, dto.CustomerID, "oldest first")
		assert.False(t, seen[dto.CustomerID], "customer %d allocated twice", dto.CustomerID)
		seen[dto.CustomerID] = true

		_, err = f.uc.Submit(ctx, SubmitInput{
			CustomerID: dto.CustomerID, AgentID: a.ID, Code: "SIF",
			Fields: domain.Fields{Amount: money(1000)},
		})
		require.NoError(t, err)
		f.assertSingleActivePerAgent(t)
	}

	_, err := f.alloc.AllocateNext(ctx, a.ID)
	assert.ErrorIs(t, err, customer.ErrNoneAvailable)
	assert.Len(t, seen, n)
}

func TestHistory_ListsLiveAndSuperseded(t *testing.T) {
	f := newFixture(t, domain.Strict)
	ctx := context.Background()
	a := sqlitedb.Agent(t, f.db, "alice")
	camp := sqlitedb.Campaign(t, f.db, "jan", a)
	c := sqlitedb.Customer(t, f.db, camp.ID, "budi")

	_, err := f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "RNR"})
	require.NoError(t, err)
	_, err = f.uc.Submit(ctx, SubmitInput{CustomerID: c.ID, AgentID: a.ID, Code: "SOW", IsEdit: true})
	require.NoError(t, err)

	h, err := f.uc.History(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, h.Dispositions, 1)
	require.Len(t, h.Edits, 1)
	assert.Equal(t, domain.CodeSOW, h.Dispositions[0].Code)
	assert.Equal(t, domain.CodeRNR, h.Edits[0].Code)
}
