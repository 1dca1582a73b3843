package crypto

import "errors"

// ErrInvalidCost is returned by [NewBcryptHasher] for a work factor outside
// the range bcrypt accepts.
var ErrInvalidCost = errors.New("invalid bcrypt cost")
