package domain

import "errors"

var (
	// ErrMalformedRecord indicates a raw record whose timestamp or numeric
	// fields could not be resolved. It is reported per record.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrCategoryUnavailable indicates the record store could not supply a category.
	ErrCategoryUnavailable = errors.New("category unavailable")
	// ErrUnauthorized indicates the record store refused access for the user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidWindow indicates an unsupported window length.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrUnknownCategory indicates a category tag outside the known set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrRecordNotFound indicates the record to delete does not exist.
	ErrRecordNotFound = errors.New("record not found")
)
