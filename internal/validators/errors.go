package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrMissingFields is returned for a login request without username or
	// password.
	ErrMissingFields = errors.New("missing fields")

	// ErrInvalidPageRequest is returned for out-of-range paging parameters.
	ErrInvalidPageRequest = errors.New("invalid page request")
)
