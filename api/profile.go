package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/todo"
)

// Profile is the authenticated user's account record.
type Profile struct {
	ID        todo.ID   `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate lists the fields to change. Nil pointers mean "don't update
// this field".
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// IsZero reports whether the update changes nothing.
func (u ProfileUpdate) IsZero() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil
}

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, nil, &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile changes the given profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if update.IsZero() {
		return fmt.Errorf("update profile: no fields to update")
	}
	if err := c.do(ctx, http.MethodPut, "/api/profile", nil, update, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
