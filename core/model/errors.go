package model

import "errors"

// One sentinel per failure category. Call sites wrap these with detail via
// fmt.Errorf("...: %w", ...); callers distinguish categories with errors.Is.
var (
	ErrUnauthorized       = errors.New("caller not authorized")
	ErrPhaseState         = errors.New("wrong phase state")
	ErrAllocationExceeded = errors.New("allocation cap exceeded")
	ErrSupplyExceeded     = errors.New("max supply exceeded")
	ErrInvalidProof       = errors.New("invalid whitelist proof")
	ErrBadInput           = errors.New("invalid input")
	ErrBadToken           = errors.New("invalid token identifier")
	ErrMintEnded          = errors.New("mint permanently ended")
)
