package sendbird

import (
	"fmt"

	"github.com/campuslink/campus-chat-api/internal/core/domain"
)

// APIError is a non-2xx platform response. The upstream body is carried
// verbatim so callers can surface the platform's own failure text.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %v: status %d: %s", e.Operation, domain.ErrRemoteService, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, domain.ErrRemoteService) match, so the
// transport layer maps any platform failure without importing this
// package's concrete type.
func (e *APIError) Unwrap() error {
	return domain.ErrRemoteService
}
