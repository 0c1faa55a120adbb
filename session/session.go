// Package session manages the persisted login session.
//
// The session file (~/.local/state/tasktracker/session.json) is the terminal
// equivalent of the web client's localStorage token: it stores the bearer
// token and the user identity between invocations. The lifecycle is explicit:
// Anonymous -> Authenticated via Save after a successful login, and back to
// Anonymous via Clear. The store doubles as the api client's TokenSource.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/api"
)

// ErrNotLoggedIn indicates no session is stored.
var ErrNotLoggedIn = errors.New("not logged in (run 'tt login')")

// Session is an authenticated login.
type Session struct {
	// Token is the bearer token attached to every API call.
	Token string `json:"token"`

	// User is the identity the server reported at login.
	User api.User `json:"user"`

	// LoggedInAt is when the session was created.
	LoggedInAt time.Time `json:"logged_in_at"`
}

// Store persists the session file with locking, so concurrent tt invocations
// don't tear the file.
type Store struct {
	dir string
}

// NewStore creates a session store using the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) sessionPath() string {
	return filepath.Join(s.dir, "session.json")
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "session.lock")
}

// Current returns the stored session, or ErrNotLoggedIn when anonymous.
func (s *Store) Current() (*Session, error) {
	data, err := os.ReadFile(s.sessionPath())
	if os.IsNotExist(err) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return &sess, nil
}

// Save writes the session to disk, transitioning to Authenticated.
func (s *Store) Save(sess *Session) error {
	if sess == nil || sess.Token == "" {
		return fmt.Errorf("session token is required")
	}

	return s.withLock(func() error {
		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		// Write atomically via temp file. The session file holds a
		// credential, so keep it owner-readable only.
		tmpFile, err := os.CreateTemp(s.dir, "session.json.tmp")
		if err != nil {
			return fmt.Errorf("create temp session file: %w", err)
		}
		name := tmpFile.Name()
		if err := tmpFile.Chmod(0600); err != nil {
			tmpFile.Close()
			os.Remove(name)
			return fmt.Errorf("chmod temp session file: %w", err)
		}
		_, err = tmpFile.Write(data)
		if err1 := tmpFile.Close(); err1 != nil && err == nil {
			err = err1
		}
		if err != nil {
			os.Remove(name)
			return fmt.Errorf("write temp session file: %w", err)
		}

		if err := os.Rename(name, s.sessionPath()); err != nil {
			os.Remove(name)
			return fmt.Errorf("rename session file: %w", err)
		}
		return nil
	})
}

// Clear removes the stored session, transitioning to Anonymous. Clearing an
// absent session is a no-op.
func (s *Store) Clear() error {
	return s.withLock(func() error {
		if err := os.Remove(s.sessionPath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	})
}

// Token implements api.TokenSource. An unreadable or absent session yields an
// empty token; the server rejects the request and the caller reports it.
func (s *Store) Token() string {
	sess, err := s.Current()
	if err != nil {
		return ""
	}
	return sess.Token
}

func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

var _ api.TokenSource = (*Store)(nil)
