package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// SignatureMismatchError is an alias to types.SignatureMismatchError.
type SignatureMismatchError = types.SignatureMismatchError

// TruncatedReadError is an alias to types.TruncatedReadError.
type TruncatedReadError = types.TruncatedReadError

// OversizedFieldError is an alias to types.OversizedFieldError.
type OversizedFieldError = types.OversizedFieldError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// OpenFailureError is an alias to types.OpenFailureError.
type OpenFailureError = types.OpenFailureError

// Warning is an alias to types.Warning.
type Warning = types.Warning
