// Package errors provides standardized error handling patterns for the SDMX connectors.
//
// # Overview
//
// The package keeps a three-class classification: Transient (temporary,
// retryable), Invalid (bad input, non-retryable) and Fatal (unrecoverable).
// On top of it sit the typed failures of provider resolution and time series
// construction:
//
//   - InvalidParameterError: a registered provider whose endpoint scheme is
//     not HTTP-family. Matches ErrInvalidParameter.
//   - UnknownProviderError: a name that resolves neither through the registry
//     nor through a registered implementation, or an implementation that
//     failed to construct. Matches ErrUnknownProvider and unwraps to the cause.
//   - StructureError: a replacement of observations or time slots whose length
//     differs from the paired sequence. Matches ErrStructure.
//
// All three classify as Invalid and are never retried.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Client", "Fetch", "http request")
//	errors.WrapInvalid(err, "Registry", "Add", "name validation")
//	errors.WrapFatal(err, "Loader", "Load", "read layer")
//
// The generic Wrap() function preserves the original error's classification.
//
// # Inspection
//
//	var upe *errors.UnknownProviderError
//	if stderrors.As(err, &upe) {
//	    log.Printf("provider %s: %v", upe.Provider, upe.Cause)
//	}
//
//	if stderrors.Is(err, errors.ErrInvalidParameter) {
//	    // unsupported endpoint scheme
//	}
package errors
