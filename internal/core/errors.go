package core

// Error codes for domain errors surfaced to the originating connection.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeLoadFailed    = "load_failed"
	ErrCodePersistFailed = "persist_failed"
	ErrCodeRateLimited   = "rate_limited"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
