package domain

import "errors"

var (
	ErrComputation       = errors.New("computation error")
	ErrDecode            = errors.New("decode error")
	ErrKeyNotFound       = errors.New("key not found")
	ErrMissingCredential = errors.New("session credential is not configured")
	ErrTransport         = errors.New("transport error")
)

// ErrorCause classifies a pipeline error for logging.
// The user always sees the same failure payload, operators see the cause.
func ErrorCause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "config"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrComputation):
		return "computation"
	default:
		return "unknown"
	}
}
