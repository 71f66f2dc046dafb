package disposition

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// amounts are stored as DECIMAL(18,2)
	amountScale = 2
)

var maxAmount = decimal.New(1, 18-amountScale)

// Fields is the loosely typed submission. Empty strings count as absent.
type Fields struct {
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	FollowUpDate *string          `json:"follow_up_date,omitempty"`
	FollowUpTime *string          `json:"follow_up_time,omitempty"`
	PaymentDate  *string          `json:"payment_date,omitempty"`
	PaymentTime  *string          `json:"payment_time,omitempty"`
	Target       *string          `json:"target,omitempty"`
}

// Mode decides what happens to fields a rule forbids.
type Mode int

const (
	// Strict rejects forbidden fields.
	Strict Mode = iota
	// Lenient drops forbidden fields.
	Lenient
)

// Payload is the validated, per-category shape of a disposition.
type Payload interface {
	Code() Code
	payload()
}

type Promise struct {
	code         Code
	Amount       decimal.Decimal
	FollowUpDate time.Time
	FollowUpTime *string
	Target       *string
}

type Callback struct {
	code         Code
	FollowUpDate time.Time
	FollowUpTime string
}

type Immediate struct {
	code Code
}

type Payment struct {
	code        Code
	Amount      decimal.Decimal
	PaymentDate *time.Time
	PaymentTime *string
}

func (p Promise) Code() Code   { return p.code }
func (p Callback) Code() Code  { return p.code }
func (p Immediate) Code() Code { return p.code }
func (p Payment) Code() Code   { return p.code }

func (Promise) payload()   {}
func (Callback) payload()  {}
func (Immediate) payload() {}
func (Payment) payload()   {}

// FollowUp returns the follow-up slot a payload schedules, if any.
func FollowUp(p Payload) (*time.Time, *string) {
	switch v := p.(type) {
	case Promise:
		d := v.FollowUpDate
		return &d, v.FollowUpTime
	case Callback:
		d, t := v.FollowUpDate, v.FollowUpTime
		return &d, &t
	}
	return nil, nil
}

// Validate checks fields against the rule for code in strict mode.
func Validate(c Code, f Fields) error {
	_, err := Build(c, f, Strict)
	return err
}

// Build validates f against the rule for c and returns the typed payload.
// All violations are reported together.
func Build(c Code, f Fields, mode Mode) (Payload, error) {
	r, ok := GetRule(c)
	if !ok {
		return nil, &ValidationError{Violations: []Violation{{Field: "code", Message: fmt.Sprintf("unknown disposition code %q", string(c))}}}
	}

	b := builder{code: c, mode: mode}
	amount := b.amount(r.Amount, f.Amount)
	fuDate := b.date("follow_up_date", r.FollowUpDate, f.FollowUpDate)
	fuTime := b.clock("follow_up_time", r.FollowUpTime, f.FollowUpTime)
	payDate := b.date("payment_date", r.PaymentDate, f.PaymentDate)
	payTime := b.clock("payment_time", r.PaymentTime, f.PaymentTime)
	target := b.text("target", r.Target, f.Target)

	if len(b.violations) > 0 {
		return nil, &ValidationError{Violations: b.violations}
	}

	switch r.Category {
	case CategoryPromise:
		return Promise{code: c, Amount: *amount, FollowUpDate: *fuDate, FollowUpTime: fuTime, Target: target}, nil
	case CategoryCallback:
		return Callback{code: c, FollowUpDate: *fuDate, FollowUpTime: *fuTime}, nil
	case CategoryImmediate:
		return Immediate{code: c}, nil
	case CategoryPayment:
		return Payment{code: c, Amount: *amount, PaymentDate: payDate, PaymentTime: payTime}, nil
	}
	panic(fmt.Sprintf("disposition: unhandled category %q", r.Category))
}

type builder struct {
	code       Code
	mode       Mode
	violations []Violation
}

func (b *builder) fail(field, format string, args ...any) {
	b.violations = append(b.violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

// admit reports whether a present/absent field may be used under req.
func (b *builder) admit(field string, req Requirement, present bool) bool {
	switch {
	case !present:
		if req == Required {
			b.fail(field, "is required for %s", b.code)
		}
		return false
	case req == Forbidden:
		if b.mode == Strict {
			b.fail(field, "is not allowed for %s", b.code)
		}
		return false
	}
	return true
}

func (b *builder) amount(req Requirement, v *decimal.Decimal) *decimal.Decimal {
	if !b.admit("amount", req, v != nil) {
		return nil
	}
	switch {
	case !v.IsPositive():
		b.fail("amount", "must be greater than zero")
		return nil
	case !v.Round(amountScale).Equal(*v):
		b.fail("amount", "must have at most %d decimal places", amountScale)
		return nil
	case v.GreaterThanOrEqual(maxAmount):
		b.fail("amount", "must be less than %s", maxAmount)
		return nil
	}
	out := v.Round(amountScale)
	return &out
}

func (b *builder) text(field string, req Requirement, v *string) *string {
	s := trimmed(v)
	if !b.admit(field, req, s != "") {
		return nil
	}
	return &s
}

func (b *builder) date(field string, req Requirement, v *string) *time.Time {
	s := b.text(field, req, v)
	if s == nil {
		return nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		b.fail(field, "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &t
}

func (b *builder) clock(field string, req Requirement, v *string) *string {
	s := b.text(field, req, v)
	if s == nil {
		return nil
	}
	t, err := time.Parse(TimeLayout, *s)
	if err != nil {
		b.fail(field, "must be a time in HH:MM format")
		return nil
	}
	out := t.Format(TimeLayout)
	return &out
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
