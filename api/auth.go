package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MatheusDosSantosR/tasktracker/todo"
)

// User identifies the authenticated account.
type User struct {
	ID    todo.ID `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
}

// Credentials is the result of a successful login.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    Credentials `json:"data"`
}

// Login authenticates with email and password and returns a bearer token
// plus the user identity.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	var response loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", nil, loginRequest{Email: email, Password: password}, &response)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if response.Data.Token == "" {
		message := response.Message
		if message == "" {
			message = "server returned no token"
		}
		return nil, fmt.Errorf("login: %s", message)
	}
	return &response.Data, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. The user still logs in separately.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	err := c.do(ctx, http.MethodPost, "/api/users", nil, registerRequest{Name: name, Email: email, Password: password}, nil)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// RecoverPassword asks the server to start a password recovery flow for the
// given email address.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, payload, nil); err != nil {
		return fmt.Errorf("recover password: %w", err)
	}
	return nil
}
