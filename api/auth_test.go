package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"message": "ok",
			"data": {"token": "jwt-token", "user": {"id": 3, "name": "Ana", "email": "ana@example.com"}}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{})
	creds, err := client.Login(context.Background(), "ana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", creds.Token)
	assert.Equal(t, "Ana", creds.User.Name)
	assert.Equal(t, "3", creds.User.ID.String())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": "error", "message": "invalid credentials"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{})
	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Login_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "account locked", "data": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{})
	_, err := client.Login(context.Background(), "ana@example.com", "hunter2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account locked")
}

func TestClient_Profile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "/api/profile", r.URL.Path)
			_, _ = w.Write([]byte(`{"id": 3, "name": "Ana", "email": "ana@example.com", "createdAt": "2024-01-02T03:04:05Z", "updatedAt": "2024-02-03T04:05:06Z"}`))
		case http.MethodPut:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"name": "Ana Maria"}, body)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{})

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "3", profile.ID.String())

	name := "Ana Maria"
	require.NoError(t, client.UpdateProfile(context.Background(), ProfileUpdate{Name: &name}))
}

func TestClient_UpdateProfile_Empty(t *testing.T) {
	client := NewClient("localhost:0", Options{})
	err := client.UpdateProfile(context.Background(), ProfileUpdate{})
	require.Error(t, err)
}
