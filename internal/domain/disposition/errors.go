package disposition

import (
	"strings"

	"collections-backend/internal/pkg/xerrors"
)

var (
	ErrNotFound      = xerrors.New(xerrors.ErrNotFound, "disposition not found")
	ErrNothingToEdit = xerrors.New(xerrors.ErrConflict, "case has no disposition to edit")
)

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule violation found in one submission.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return xerrors.ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return xerrors.ErrValidation }
