package integration

import "errors"

// Common integration errors
var (
	// ErrIncompatibleProvider is reported when a tracer provider does not
	// expose the add-processor capability needed for attachment.
	ErrIncompatibleProvider = errors.New("integration: provider does not accept span processors")
)

// IsIncompatibleProviderError checks if the error means the provider cannot
// accept span processors.
func IsIncompatibleProviderError(err error) bool {
	return errors.Is(err, ErrIncompatibleProvider)
}
