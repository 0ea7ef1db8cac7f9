package circulation

import "errors"

// Failure kinds of the circulation engine. Each precondition of Issue and
// Return maps to exactly one sentinel so callers can classify with
// errors.Is; the messages are the user-visible explanation.
var (
	// Not-found failures: a referenced entity does not exist.
	ErrBookNotFound        = errors.New("book not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrNoActiveTransaction = errors.New("active transaction not found")

	// Invalid-state failures: the entity exists but a business rule blocks
	// the operation.
	ErrNoCopiesAvailable = errors.New("no copies available for this book")
	ErrMemberInactive    = errors.New("member account is inactive")
	ErrDuplicateIssue    = errors.New("member already has this book issued")
)

// IsNotFound reports whether err is one of the engine's not-found failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrNoActiveTransaction)
}

// IsInvalidState reports whether err is a business-rule violation.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrNoCopiesAvailable) ||
		errors.Is(err, ErrMemberInactive) ||
		errors.Is(err, ErrDuplicateIssue)
}
