package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// SessionInfo is the backend's answer to GET /session.
type SessionInfo struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username"`
}

// APIError is a non-2xx backend response with its decoded {error} message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error: %s (status %d)", e.Message, e.StatusCode)
}

// ErrUnauthenticated marks 401/403 responses so callers can tell "please
// log in" apart from transport failures. It is the tracker sentinel, not a
// local one, so the pipeline can match it without importing this package.
var ErrUnauthenticated = tracker.ErrUnauthenticated

// Is lets errors.Is(err, ErrUnauthenticated) match auth failures.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthenticated &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else if msg := strings.TrimSpace(string(raw)); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}
