package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/todo"
)

// Server is an in-memory TaskTracker API for tests. It speaks the same wire
// contract as the real backend: bearer auth, numeric ids, soft deletes, and
// {msg, data} envelopes on create.
type Server struct {
	HTTP *httptest.Server

	Email    string
	Password string
	Token    string

	mu     sync.Mutex
	nextID int
	todos  []todo.Todo
}

// NewServer starts a fake API server that is torn down with the test.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Email:    "user@example.com",
		Password: "secret",
		Token:    "test-token",
		nextID:   1,
	}
	s.HTTP = httptest.NewServer(http.HandlerFunc(s.route))
	t.Cleanup(s.HTTP.Close)
	return s
}

// URL returns the server's base address.
func (s *Server) URL() string {
	return s.HTTP.URL
}

// Seed installs todos directly, bypassing the API.
func (s *Server) Seed(todos ...todo.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range todos {
		if todos[i].ID == "" {
			todos[i].ID = todo.ID(strconv.Itoa(s.nextID))
			s.nextID++
		}
	}
	s.todos = append(s.todos, todos...)
}

// Todos returns a copy of the stored todos, soft-deleted ones included.
func (s *Server) Todos() []todo.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]todo.Todo(nil), s.todos...)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/login" && r.Method == http.MethodPost:
		s.handleLogin(w, r)
	case r.URL.Path == "/api/users" && r.Method == http.MethodPost:
		writeJSON(w, http.StatusCreated, map[string]string{"msg": "user created"})
	case r.URL.Path == "/api/profile":
		s.handleProfile(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/todos"):
		s.handleTodos(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	// A body without a password is a recovery request.
	if body.Password == "" {
		writeJSON(w, http.StatusOK, map[string]string{"msg": "recovery email sent"})
		return
	}

	if body.Email != s.Email || body.Password != s.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"token": s.Token,
			"user":  map[string]any{"id": 1, "name": "Test User", "email": s.Email},
		},
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "name": "Test User", "email": s.Email})
	case http.MethodPut:
		writeJSON(w, http.StatusOK, map[string]string{"msg": "profile updated"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (s *Server) handleTodos(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/todos"), "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && id == "":
		s.list(w, r)
	case r.Method == http.MethodPost:
		s.create(w, r)
	case r.Method == http.MethodPut && id != "":
		s.update(w, r, todo.ID(id))
	case r.Method == http.MethodDelete && id != "":
		s.delete(w, todo.ID(id))
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	priority := r.URL.Query().Get("priority")
	status := r.URL.Query().Get("status")

	visible := make([]todo.Todo, 0, len(s.todos))
	for _, item := range s.todos {
		if item.DeletedAt != nil {
			continue
		}
		if priority != "" && string(item.Priority) != priority {
			continue
		}
		if status != "" && string(item.Status) != status {
			continue
		}
		visible = append(visible, item)
	}
	writeJSON(w, http.StatusOK, visible)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var item todo.Todo
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}
	item.ID = todo.ID(strconv.Itoa(s.nextID))
	s.nextID++
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	s.todos = append(s.todos, item)

	writeJSON(w, http.StatusCreated, map[string]any{"msg": "todo created", "data": item})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, id todo.ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}

	// Distinguish a full replace from a completion-only toggle by which
	// keys the body carries.
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	item := s.todos[idx]
	if _, full := fields["title"]; full {
		var replacement todo.Todo
		data, _ := json.Marshal(fields)
		if err := json.Unmarshal(data, &replacement); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
			return
		}
		replacement.ID = item.ID
		replacement.CreatedAt = item.CreatedAt
		item = replacement
	} else if raw, ok := fields["isCompleted"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
			return
		}
		item.IsCompleted = completed
	}
	item.UpdatedAt = time.Now().UTC()
	s.todos[idx] = item

	writeJSON(w, http.StatusOK, map[string]string{"msg": "todo updated"})
}

func (s *Server) delete(w http.ResponseWriter, id todo.ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}
	now := time.Now().UTC()
	s.todos[idx].DeletedAt = &now

	writeJSON(w, http.StatusOK, map[string]string{"msg": "todo deleted"})
}

func (s *Server) indexOf(id todo.ID) int {
	for i, item := range s.todos {
		if item.ID == id && item.DeletedAt == nil {
			return i
		}
	}
	return -1
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+s.Token {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
