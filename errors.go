package lastwish

import "errors"

// Sentinel errors for library operations.
var (
	ErrRender   = errors.New("PDF rendering failed")
	ErrTemplate = errors.New("legal text template rendering failed")

	// Input validation errors.
	ErrInvalidInstructionsFormat = errors.New("invalid instructions format")

	// Option validation errors.
	ErrInvalidAssetPath  = errors.New("invalid asset path")
	ErrInvalidDateFormat = errors.New("invalid date format")

	// Bundle loading errors.
	ErrInvalidBundle = errors.New("invalid input bundle")

	// Pool errors.
	ErrPoolClosed = errors.New("generator pool closed")
)
