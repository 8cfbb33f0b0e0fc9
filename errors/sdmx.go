package errors

import (
	"fmt"
)

// InvalidParameterError reports a provider whose endpoint cannot be served
// by the protocol client, e.g. a non-HTTP scheme.
type InvalidParameterError struct {
	Provider string
	Scheme   string
	Reason   string
}

// NewInvalidParameter creates an InvalidParameterError for provider.
func NewInvalidParameter(provider, scheme, reason string) *InvalidParameterError {
	return &InvalidParameterError{Provider: provider, Scheme: scheme, Reason: reason}
}

func (e *InvalidParameterError) Error() string {
	msg := fmt.Sprintf("the provider '%s' is not available in this configuration", e.Provider)
	if e.Scheme != "" {
		msg += fmt.Sprintf(": protocol '%s' is not supported", e.Scheme)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is matches ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// UnknownProviderError reports a provider name that resolves neither through
// the registry nor through a registered implementation, or whose
// implementation could not be constructed. Cause holds the underlying failure.
type UnknownProviderError struct {
	Provider string
	Cause    error
}

// NewUnknownProvider creates an UnknownProviderError wrapping cause.
func NewUnknownProvider(provider string, cause error) *UnknownProviderError {
	return &UnknownProviderError{Provider: provider, Cause: cause}
}

func (e *UnknownProviderError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("unknown provider '%s'", e.Provider)
	}
	return fmt.Sprintf("unknown provider '%s': %v", e.Provider, e.Cause)
}

// Unwrap returns the construction cause.
func (e *UnknownProviderError) Unwrap() error {
	return e.Cause
}

// Is matches ErrUnknownProvider.
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// StructureError reports a replacement sequence whose length does not match
// the paired sequence of a time series.
type StructureError struct {
	Field string
	Got   int
	Want  int
}

// NewStructure creates a StructureError for field.
func NewStructure(field string, got, want int) *StructureError {
	return &StructureError{Field: field, Got: got, Want: want}
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("error setting %s in time series: wrong number of elements (got %d, want %d)",
		e.Field, e.Got, e.Want)
}

// Is matches ErrStructure.
func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}
