package booking

import "errors"

// Error taxonomy shared by the repo layer and the controllers. Controllers
// map these onto HTTP codes in one place; the repo layer wraps them with
// context via fmt.Errorf("...: %w", ...).
var (
	ErrValidation    = errors.New("invalid input")
	ErrConflict      = errors.New("booking conflict")
	ErrStateConflict = errors.New("illegal state transition")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrBusy          = errors.New("resource busy, retry")
)
