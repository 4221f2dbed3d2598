package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// CredentialSource supplies the bearer credential attached to every task
// API request. An empty credential means no session is held.
type CredentialSource interface {
	Credential() string
}

// TaskGateway is the remote task collection as seen by the reconciler.
type TaskGateway interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Client performs authenticated CRUD against the task API and
// normalizes error payloads into the gateway error taxonomy.
type Client struct {
	base     string
	creds    CredentialSource
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the API rooted at base
// (e.g. "http://localhost:5000/api").
func NewClient(base string, creds CredentialSource, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		creds: creds,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// errorPayload is the JSON error body the API returns on failures.
type errorPayload struct {
	Message string `json:"message"`
}

// authResponse is the JSON body returned by login and register.
type authResponse struct {
	Token string `json:"token"`
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// Login exchanges credentials for a bearer token. It does not require a
// held session.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.doUnauthenticated(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp authResponse
	if err := c.doUnauthenticated(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	token := c.creds.Credential()
	if token == "" {
		c.observe(method, path, 0, 0, ErrSessionInvalid)
		return ErrSessionInvalid
	}
	return c.roundTrip(ctx, method, path, token, body, dest)
}

func (c *Client) doUnauthenticated(ctx context.Context, method, path string, body, dest any) error {
	return c.roundTrip(ctx, method, path, "", body, dest)
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, body, dest any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrUnavailable, err)
		c.observe(method, path, 0, time.Since(start).Milliseconds(), wrapped)
		return wrapped
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	// A 401 only means the session is dead when a session was sent.
	// Login and register run without one; their 401s carry the server's
	// own message (wrong password, unknown account).
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.observe(method, path, resp.StatusCode, time.Since(start).Milliseconds(), ErrSessionInvalid)
		return ErrSessionInvalid
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.Unmarshal(respBody, &payload)
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
		terr := &TransportError{StatusCode: resp.StatusCode, Message: payload.Message}
		c.observe(method, path, resp.StatusCode, time.Since(start).Milliseconds(), terr)
		return terr
	}

	if dest != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	c.observe(method, path, resp.StatusCode, time.Since(start).Milliseconds(), nil)
	return nil
}

func (c *Client) observe(method, path string, status int, latencyMs int64, err error) {
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: latencyMs,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}
