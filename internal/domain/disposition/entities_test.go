package disposition

import (
	"testing"
	"time"
)

func TestNew_LeavesForeignColumnsNull(t *testing.T) {
	p, err := Build(CodeRTP, Fields{Amount: amt(999), Target: str("X")}, Lenient)
	if err != nil {
		t.Fatal(err)
	}
	d := New(1, 2, 3, p, "no answer")
	if d.PromiseAmount != nil || d.FollowUpDate != nil || d.FollowUpTime != nil ||
		d.PaymentDate != nil || d.PaymentTime != nil || d.Target != nil {
		t.Fatalf("forbidden columns populated: %+v", d)
	}
	if d.Code != CodeRTP || d.CaseID != 1 || d.CustomerID != 2 || d.AgentID != 3 || d.Remarks != "no answer" {
		t.Fatalf("unexpected row %+v", d)
	}
}

func TestNew_PaymentUsesAmountColumn(t *testing.T) {
	p, err := Build(CodePIF, Fields{Amount: amt(50000), PaymentDate: str("2026-03-01")}, Strict)
	if err != nil {
		t.Fatal(err)
	}
	d := New(1, 2, 3, p, "")
	if d.PromiseAmount == nil || d.PromiseAmount.IntPart() != 50000 {
		t.Fatalf("amount = %v", d.PromiseAmount)
	}
	if d.PaymentDate == nil || d.FollowUpDate != nil {
		t.Fatalf("dates wrong: %+v", d)
	}
}

func TestSnapshot(t *testing.T) {
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	d := &Disposition{ID: 9, CaseID: 1, CustomerID: 2, AgentID: 3, Code: CodePTP, PromiseAmount: amt(5000), Remarks: "r", CreatedAt: created}
	at := created.Add(time.Hour)

	h := d.Snapshot(4, at)
	if h.OriginalDispositionID != 9 || h.Code != CodePTP || !h.PromiseAmount.Equal(*d.PromiseAmount) {
		t.Fatalf("snapshot mismatch: %+v", h)
	}
	if !h.CreatedAt.Equal(created) || !h.ArchivedAt.Equal(at) || h.ArchivedBy != 4 {
		t.Fatalf("stamps wrong: %+v", h)
	}
}
