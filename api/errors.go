package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized indicates the server rejected the bearer token. The session
// layer reacts by dropping the stored session and asking the user to log in
// again; nothing in the task core handles it.
var ErrUnauthorized = errors.New("unauthorized")

// FetchError indicates a list request failed. The caller keeps its previous
// collection and surfaces the message.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch todos: " + e.Err.Error() }

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError indicates a create or update failed, including validation
// rejections from the server. The caller leaves the collection and any open
// editor untouched.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string { return "submit todo: " + e.Err.Error() }

// Unwrap returns the underlying cause.
func (e *SubmitError) Unwrap() error { return e.Err }

// DeleteError indicates a deletion failed. The caller keeps the todo.
type DeleteError struct {
	Err error
}

func (e *DeleteError) Error() string { return "delete todo: " + e.Err.Error() }

// Unwrap returns the underlying cause.
func (e *DeleteError) Unwrap() error { return e.Err }

// errorFromResponse converts a non-2xx response into an error carrying the
// server's message. The API is inconsistent about the message key across
// revisions, so all observed spellings are tried.
func errorFromResponse(resp *http.Response) error {
	message := resp.Status

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		for _, key := range []string{"error", "message", "msg"} {
			raw, ok := payload[key]
			if !ok {
				continue
			}
			var value string
			if err := json.Unmarshal(raw, &value); err == nil && value != "" {
				message = value
				break
			}
		}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	}
	return fmt.Errorf("server error: %s (status %d)", message, resp.StatusCode)
}
