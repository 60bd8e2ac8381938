package depot

import "errors"

// Config validation errors; cmd/root.go surfaces these as the
// "invalid name" / "invalid quantity" / usage diagnostics printed on
// startup failure.
var (
	ErrNameRequired    = errors.New("depot: name is required")
	ErrInvalidName     = errors.New("depot: invalid name")
	ErrInvalidQuantity = errors.New("depot: invalid quantity")
	ErrOddSeedTokens   = errors.New("depot: seed goods must be given in good/quantity pairs")
)
