package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCreds string

func (s staticCreds) Credential() string { return string(s) }

func TestClient_ListTasks_AttachesBearerToken(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]domain.Task{
			{ID: "t1", Title: "Write report", DueDate: &due},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds("tok-1"), NoopObserver{})
	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	require.NotNil(t, tasks[0].DueDate)
	assert.True(t, tasks[0].DueDate.Equal(due))
}

func TestClient_NoCredential_SessionInvalid(t *testing.T) {
	c := NewClient("http://localhost:0/api", staticCreds(""), NoopObserver{})
	_, err := c.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestClient_Unauthorized_SessionInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Token has expired"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds("stale"), NoopObserver{})
	_, err := c.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestClient_Login_WrongPassword_KeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds(""), NoopObserver{})
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionInvalid, "a failed login is not a dead session")

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "Invalid credentials", terr.Message)
}

func TestClient_NonOK_TransportErrorWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "title is required"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds("tok"), NoopObserver{})
	_, err := c.CreateTask(context.Background(), domain.TaskDraft{})
	require.Error(t, err)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusBadRequest, terr.StatusCode)
	assert.Equal(t, "title is required", terr.Message)
}

func TestClient_NonOK_EmptyBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds("tok"), NoopObserver{})
	err := c.DeleteTask(context.Background(), "t1")

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "Internal Server Error", terr.Message)
}

func TestClient_ConnectionRefused_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately closed before use

	c := NewClient(srv.URL+"/api", staticCreds("tok"), NoopObserver{})
	_, err := c.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_UpdateTask_SendsPatchBody(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tasks/t9", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Task{ID: "t9", Title: "x", Completed: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds("tok"), NoopObserver{})
	task, err := c.UpdateTask(context.Background(), "t9", domain.TaskPatch{Completed: domain.BoolPtr(true)})
	require.NoError(t, err)
	assert.True(t, task.Completed)

	assert.Equal(t, true, received["completed"])
	_, hasTitle := received["title"]
	assert.False(t, hasTitle, "nil patch fields stay off the wire")
}

func TestClient_Login_ReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login needs no session")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{"token": "fresh-token"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", staticCreds(""), NoopObserver{})
	token, err := c.Login(context.Background(), "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}
