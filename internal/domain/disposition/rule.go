package disposition

import "collections-backend/internal/domain/workcase"

type Category string

const (
	CategoryPromise   Category = "promise"
	CategoryCallback  Category = "callback"
	CategoryImmediate Category = "immediate"
	CategoryPayment   Category = "payment"
)

type Requirement string

const (
	Forbidden Requirement = "forbidden"
	Optional  Requirement = "optional"
	Required  Requirement = "required"
)

// Rule describes which fields a code accepts. It is also served to
// clients so forms can render the right inputs.
type Rule struct {
	Code         Code            `json:"code"`
	Category     Category        `json:"category"`
	ResultStatus workcase.Status `json:"result_status"`
	Amount       Requirement     `json:"amount"`
	FollowUpDate Requirement     `json:"follow_up_date"`
	FollowUpTime Requirement     `json:"follow_up_time"`
	PaymentDate  Requirement     `json:"payment_date"`
	PaymentTime  Requirement     `json:"payment_time"`
	Target       Requirement     `json:"target"`
}

func promiseRule(c Code) Rule {
	return Rule{
		Code: c, Category: CategoryPromise,
		Amount: Required, FollowUpDate: Required, FollowUpTime: Optional,
		PaymentDate: Forbidden, PaymentTime: Forbidden, Target: Optional,
	}
}

func callbackRule(c Code) Rule {
	return Rule{
		Code: c, Category: CategoryCallback,
		Amount: Forbidden, FollowUpDate: Required, FollowUpTime: Required,
		PaymentDate: Forbidden, PaymentTime: Forbidden, Target: Forbidden,
	}
}

func immediateRule(c Code) Rule {
	return Rule{
		Code: c, Category: CategoryImmediate,
		Amount: Forbidden, FollowUpDate: Forbidden, FollowUpTime: Forbidden,
		PaymentDate: Forbidden, PaymentTime: Forbidden, Target: Forbidden,
	}
}

func paymentRule(c Code) Rule {
	return Rule{
		Code: c, Category: CategoryPayment,
		Amount: Required, FollowUpDate: Forbidden, FollowUpTime: Forbidden,
		PaymentDate: Optional, PaymentTime: Optional, Target: Forbidden,
	}
}

var rules = func() map[Code]Rule {
	m := map[Code]Rule{}
	add := func(r Rule) {
		r.ResultStatus = ResultStatus(r.Code)
		m[r.Code] = r
	}
	add(promiseRule(CodePTP))
	add(promiseRule(CodePRT))
	add(callbackRule(CodeCBC))
	for _, c := range []Code{CodeBRP, CodeRTP, CodeTPC, CodeLNB, CodeVOI, CodeRNR, CodeSOW, CodeOOS, CodeWRN} {
		add(immediateRule(c))
	}
	for _, c := range []Code{CodeSIF, CodePIF, CodeFCL} {
		add(paymentRule(c))
	}
	return m
}()

func GetRule(c Code) (Rule, bool) {
	r, ok := rules[c]
	return r, ok
}

// Rules returns the full table in code order.
func Rules() []Rule {
	out := make([]Rule, 0, len(allCodes))
	for _, c := range allCodes {
		out = append(out, rules[c])
	}
	return out
}
