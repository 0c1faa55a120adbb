// Package api implements the HTTP client for the TaskTracker REST API.
//
// The client is a thin transport: it attaches the current bearer token to
// every request, encodes filters as query parameters, and converts non-2xx
// responses into the error taxonomy in errors.go. It keeps no task state;
// the todo and gateway packages own that.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds every request unless the caller overrides it.
const DefaultTimeout = 15 * time.Second

// TokenSource provides the current bearer token. An empty token is tolerated:
// the request is sent unauthenticated and the server decides.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource with a fixed token, useful for scripts and
// tests.
type StaticToken string

// Token returns the fixed token.
func (t StaticToken) Token() string { return string(t) }

// Options configures a Client.
type Options struct {
	// Tokens supplies the bearer token. If nil, requests are sent
	// unauthenticated.
	Tokens TokenSource

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Logger receives request-level debug logging. If nil, logging is
	// discarded.
	Logger *log.Logger

	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the TaskTracker API.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     *log.Logger
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string, opts Options) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		tokens:  opts.Tokens,
		log:     logger,
	}
}

// BaseURL returns the resolved server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTodos fetches the user's todos, optionally narrowed server-side by the
// filter. Failures are reported as *FetchError.
func (c *Client) ListTodos(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	query := url.Values{}
	if filter.Priority != nil {
		query.Set("priority", string(*filter.Priority))
	}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}

	var todos []todo.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", query, nil, &todos); err != nil {
		return nil, &FetchError{Err: err}
	}
	return todos, nil
}

type createTodoResponse struct {
	Msg  string    `json:"msg"`
	Data todo.Todo `json:"data"`
}

// CreateTodo creates a new todo and returns the server record, including the
// assigned ID. Failures are reported as *SubmitError.
func (c *Client) CreateTodo(ctx context.Context, draft todo.Todo) (*todo.Todo, error) {
	var response createTodoResponse
	if err := c.do(ctx, http.MethodPost, "/api/todos/", nil, todoBody(draft), &response); err != nil {
		return nil, &SubmitError{Err: err}
	}

	created := response.Data
	if created.ID == "" {
		return nil, &SubmitError{Err: fmt.Errorf("server returned no todo id")}
	}
	return &created, nil
}

// UpdateTodo replaces the stored fields of an existing todo. Failures are
// reported as *SubmitError.
func (c *Client) UpdateTodo(ctx context.Context, id todo.ID, item todo.Todo) error {
	if id == "" {
		return &SubmitError{Err: todo.ErrMissingID}
	}
	if err := c.do(ctx, http.MethodPut, todoPath(id), nil, todoBody(item), nil); err != nil {
		return &SubmitError{Err: err}
	}
	return nil
}

type setCompletedRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

// SetCompleted issues a status-only update flipping the completion flag.
// Failures are reported as *SubmitError.
func (c *Client) SetCompleted(ctx context.Context, id todo.ID, completed bool) error {
	if id == "" {
		return &SubmitError{Err: todo.ErrMissingID}
	}
	if err := c.do(ctx, http.MethodPut, todoPath(id), nil, setCompletedRequest{IsCompleted: completed}, nil); err != nil {
		return &SubmitError{Err: err}
	}
	return nil
}

// DeleteTodo soft-deletes a todo on the server. Failures are reported as
// *DeleteError.
func (c *Client) DeleteTodo(ctx context.Context, id todo.ID) error {
	if id == "" {
		return &DeleteError{Err: todo.ErrMissingID}
	}
	if err := c.do(ctx, http.MethodDelete, todoPath(id), nil, nil, nil); err != nil {
		return &DeleteError{Err: err}
	}
	return nil
}

func todoPath(id todo.ID) string {
	return "/api/todos/" + url.PathEscape(id.String())
}

// todoWire is the request body for create and update calls. The server
// assigns the ID, so it is never sent.
type todoWire struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsCompleted bool           `json:"isCompleted"`
	Priority    todo.Priority  `json:"priority"`
	Status      todo.Status    `json:"status,omitempty"`
	DueDate     *time.Time     `json:"dueDate"`
	Subtasks    []todo.Subtask `json:"subtasks,omitempty"`
}

func todoBody(item todo.Todo) todoWire {
	return todoWire{
		Title:       item.Title,
		Description: item.Description,
		IsCompleted: item.IsCompleted,
		Priority:    item.Priority,
		Status:      item.Status,
		DueDate:     item.DueDate,
		Subtasks:    item.Subtasks,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, dest any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug("api request", "method", method, "path", path)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := errorFromResponse(resp)
		c.log.Debug("api error", "method", method, "path", path, "status", resp.StatusCode, "err", err)
		return err
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
