package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyReflection    = errors.New("please write something before submitting")
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
	ErrStoreUnreadable    = errors.New("store unreadable")
	ErrEmptyQuoteSet      = errors.New("quote set is empty")
)

// IsUserInput reports whether err is a rejected submission the user can fix,
// as opposed to a storage failure.
func IsUserInput(err error) bool {
	return errors.Is(err, ErrEmptyReflection) || errors.Is(err, ErrProgressOutOfRange) || errors.Is(err, ErrInvalidInput)
}
