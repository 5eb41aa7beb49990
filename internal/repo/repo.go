package repo

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned by lookups when no matching record exists.
// Absence is a normal outcome here; services decide whether it is an error.
var ErrNotFound = errors.New("record not found")

// Shared field validator for store-boundary checks.
var validate = validator.New()
