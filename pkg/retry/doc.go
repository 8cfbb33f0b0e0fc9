// Package retry provides exponential backoff retry for transient failures.
//
// The provider transport wraps every HTTP exchange in Do so that timeouts,
// dropped connections, 5xx and 429 responses are retried while malformed
// requests and missing resources fail at once.
//
//	err := retry.Do(ctx, retry.Transient(3), func() error {
//	    return fetchOnce(ctx, u)
//	})
//
// Errors wrapped with NonRetryable always stop the loop. A config whose
// Retryable predicate rejects an error stops it too. Exhausting all
// attempts returns an error matching errors.ErrMaxRetriesExceeded that still
// wraps the last failure.
package retry
