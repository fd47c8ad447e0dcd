package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, reported before any network I/O.
const (
	// ErrCodeInvalidConfig indicates a malformed descriptor or overrides value.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeDelimiterMismatch indicates the delimiter count does not fit the
	// resource's segment count.
	ErrCodeDelimiterMismatch ErrorCode = "DELIMITER_MISMATCH"
	// ErrCodeInvalidInput indicates a value failed struct validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Lookup errors
const (
	// ErrCodeNotFound indicates a named entry (resource, verb) does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Response errors
const (
	// ErrCodeSchemaMismatch indicates a response payload does not satisfy the
	// JSON schema it was checked against.
	ErrCodeSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure inside the library.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeEncoding indicates a body could not be serialized.
	ErrCodeEncoding ErrorCode = "ENCODING_ERROR"
)

// IsConfigCode reports whether code belongs to the configuration class,
// i.e. the failure was detected before the request was dispatched.
func IsConfigCode(code ErrorCode) bool {
	switch code {
	case ErrCodeInvalidConfig, ErrCodeDelimiterMismatch, ErrCodeInvalidInput,
		ErrCodeMissingField, ErrCodeEncoding:
		return true
	default:
		return false
	}
}
