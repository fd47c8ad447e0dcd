// Package errors defines the structured error type used for configuration
// failures across neysla.
//
// Configuration errors are detected synchronously, before a request ever
// reaches a transport, and carry a machine-readable ErrorCode plus the
// offending field in Details:
//
//	call, err := users.Get(ctx, resource.WithDelimiters("7", "3", "9"))
//	if errors.HasCode(err, errors.ErrCodeDelimiterMismatch) {
//	    // the resource has fewer segments than the delimiters supplied
//	}
package errors
