package disposition

import (
	"fmt"
	"strings"

	"collections-backend/internal/domain/workcase"
)

// Code is a disposition outcome. The set is closed: anything outside
// allCodes is rejected at parse time.
type Code string

const (
	CodePTP Code = "PTP"
	CodePRT Code = "PRT"
	CodeCBC Code = "CBC"

	CodeBRP Code = "BRP"
	CodeRTP Code = "RTP"
	CodeTPC Code = "TPC"
	CodeLNB Code = "LNB"
	CodeVOI Code = "VOI"
	CodeRNR Code = "RNR"
	CodeSOW Code = "SOW"
	CodeOOS Code = "OOS"
	CodeWRN Code = "WRN"

	CodeSIF Code = "SIF"
	CodePIF Code = "PIF"
	CodeFCL Code = "FCL"
)

var allCodes = []Code{
	CodePTP, CodePRT, CodeCBC,
	CodeBRP, CodeRTP, CodeTPC, CodeLNB, CodeVOI, CodeRNR, CodeSOW, CodeOOS, CodeWRN,
	CodeSIF, CodePIF, CodeFCL,
}

// Codes returns every known code in table order.
func Codes() []Code {
	out := make([]Code, len(allCodes))
	copy(out, allCodes)
	return out
}

// ParseCode accepts the code case-insensitively and trims whitespace.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rules[c]; !ok {
		return "", &ValidationError{Violations: []Violation{{
			Field:   "code",
			Message: fmt.Sprintf("unknown disposition code %q", s),
		}}}
	}
	return c, nil
}

func (c Code) Valid() bool {
	_, ok := rules[c]
	return ok
}

func (c Code) String() string { return string(c) }

// ResultStatus is the case status a disposition moves its case into.
func ResultStatus(c Code) workcase.Status {
	switch c {
	case CodePTP, CodePRT, CodeCBC:
		return workcase.StatusFollowUp
	case CodeBRP, CodeRTP, CodeTPC, CodeLNB, CodeVOI, CodeRNR, CodeSOW, CodeOOS, CodeWRN:
		return workcase.StatusInProgress
	case CodeSIF, CodePIF, CodeFCL:
		return workcase.StatusDone
	}
	panic(fmt.Sprintf("disposition: no result status for code %q", string(c)))
}
