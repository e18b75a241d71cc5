// Package client is the Go SDK for the task-heroes REST API. It mirrors
// what the mobile app does: stateless typed resource calls carrying an
// explicit caller identity, a session holding the current user snapshot,
// view-model normalization, and the once-per-day daily reset check.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DefaultTimeout is the fixed per-request deadline. Requests are never
// retried and cannot be cancelled once issued other than through ctx.
const DefaultTimeout = 10 * time.Second

// Identity is the caller context sent as query parameters on every
// request. It is passed explicitly rather than held in hidden state.
type Identity struct {
	UserID  uint64
	IsAdmin bool
}

func (id Identity) query() url.Values {
	values := url.Values{}
	values.Set("userId", strconv.FormatUint(id.UserID, 10))
	values.Set("isAdmin", strconv.FormatBool(id.IsAdmin))
	return values
}

// User is a user record as returned by the API.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Points   int    `json:"points"`
}

// Record is a raw resource record. Task and reward lists are kept loose
// until normalization shapes them for display.
type Record = map[string]any

// Client issues the typed resource calls. It holds no session state;
// every call is independent and at-most-once.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the fixed per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return validationError(fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return validationError(fmt.Sprintf("build request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatusError(resp.StatusCode, serverMessage(payload))
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return &Error{Kind: KindServerError, StatusCode: resp.StatusCode,
				Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

func serverMessage(payload []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return string(payload)
}

// --- Users ---

// Login posts credentials and returns the authenticated user.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" {
		return nil, validationError("username is required")
	}
	var user User
	err := c.do(ctx, http.MethodPost, "/users/login", nil,
		map[string]string{"username": username, "password": password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers fetches the full user list.
func (c *Client) ListUsers(ctx context.Context, identity Identity) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", identity.query(), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id uint64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, username, password string, admin bool) (*User, error) {
	if username == "" {
		return nil, validationError("username is required")
	}
	var user User
	err := c.do(ctx, http.MethodPost, "/users", nil, map[string]any{
		"username": username,
		"password": password,
		"admin":    admin,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user's username, role and credential.
func (c *Client) UpdateUser(ctx context.Context, id uint64, username, password string, admin bool) (*User, error) {
	if username == "" {
		return nil, validationError("username is required")
	}
	var user User
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, map[string]any{
		"username": username,
		"password": password,
		"admin":    admin,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id uint64, identity Identity) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), identity.query(), nil, nil)
}

// --- Tasks ---

// TaskInput holds the fields for creating a task.
type TaskInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	RewardPoints int    `json:"rewardPoints"`
	IsDaily      bool   `json:"isDaily"`
}

// CompletionResult is the response to completing a task. Points is the
// assigned user's authoritative total when the server provides one.
type CompletionResult struct {
	Task   Record `json:"task"`
	Points *int   `json:"points"`
}

// DailyCheckResult is the response to the per-user daily check.
type DailyCheckResult struct {
	ServerDate string `json:"serverDate"`
	ClientDate string `json:"clientDate"`
	TasksReset int    `json:"tasksReset"`
}

// ListTasks fetches the raw task list visible to the caller.
func (c *Client) ListTasks(ctx context.Context, identity Identity) ([]Record, error) {
	return c.listRecords(ctx, "/tasks", identity)
}

// ListCompletedTasks fetches completed tasks.
func (c *Client) ListCompletedTasks(ctx context.Context, identity Identity) ([]Record, error) {
	return c.listRecords(ctx, "/tasks/completed", identity)
}

// ListIncompleteTasks fetches tasks not yet completed.
func (c *Client) ListIncompleteTasks(ctx context.Context, identity Identity) ([]Record, error) {
	return c.listRecords(ctx, "/tasks/incomplete", identity)
}

// GetTask fetches a task by id.
func (c *Client) GetTask(ctx context.Context, id uint64) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateTask creates a task assigned to the given user. Admin only.
func (c *Client) CreateTask(ctx context.Context, identity Identity, assignedUserID uint64, input TaskInput) (Record, error) {
	if input.Title == "" {
		return nil, validationError("title is required")
	}
	query := identity.query()
	query.Set("assignedUserId", strconv.FormatUint(assignedUserID, 10))

	var record Record
	if err := c.do(ctx, http.MethodPost, "/tasks", query, input, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CompleteTask marks a task completed, sending the client's calendar date.
func (c *Client) CompleteTask(ctx context.Context, id uint64, identity Identity, clientDate string) (*CompletionResult, error) {
	query := identity.query()
	query.Set("clientDate", clientDate)

	var result CompletionResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/complete", id), query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckDailyTasks runs the per-user daily reset check for the given date.
func (c *Client) CheckDailyTasks(ctx context.Context, userID uint64, currentDate string) (*DailyCheckResult, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatUint(userID, 10))
	query.Set("currentDate", currentDate)

	var result DailyCheckResult
	if err := c.do(ctx, http.MethodGet, "/tasks/check-daily", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResetDailyTasks triggers the bulk daily reset. Admin only.
func (c *Client) ResetDailyTasks(ctx context.Context, identity Identity) (int, error) {
	var result struct {
		Reset int `json:"reset"`
	}
	if err := c.do(ctx, http.MethodPost, "/tasks/reset-daily", identity.query(), nil, &result); err != nil {
		return 0, err
	}
	return result.Reset, nil
}

// DeleteTask removes a task. Admin only.
func (c *Client) DeleteTask(ctx context.Context, id uint64, identity Identity) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), identity.query(), nil, nil)
}

// --- Rewards ---

// RewardInput holds the fields for creating a reward.
type RewardInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// RedemptionResult is the response to redeeming a reward. Points is the
// assigned user's authoritative total when the server provides one.
type RedemptionResult struct {
	Reward Record `json:"reward"`
	Points *int   `json:"points"`
}

// ListRewards fetches the raw reward list visible to the caller.
func (c *Client) ListRewards(ctx context.Context, identity Identity) ([]Record, error) {
	return c.listRecords(ctx, "/rewards", identity)
}

// ListAvailableRewards fetches rewards not yet redeemed.
func (c *Client) ListAvailableRewards(ctx context.Context, identity Identity) ([]Record, error) {
	return c.listRecords(ctx, "/rewards/available", identity)
}

// ListRedeemedRewards fetches redeemed rewards.
func (c *Client) ListRedeemedRewards(ctx context.Context, identity Identity) ([]Record, error) {
	return c.listRecords(ctx, "/rewards/redeemed", identity)
}

// GetReward fetches a reward by id.
func (c *Client) GetReward(ctx context.Context, id uint64) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/rewards/%d", id), nil, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateReward creates a reward assigned to the given user. Admin only.
func (c *Client) CreateReward(ctx context.Context, identity Identity, assignedUserID uint64, input RewardInput) (Record, error) {
	if input.Title == "" {
		return nil, validationError("title is required")
	}
	query := identity.query()
	query.Set("assignedUserId", strconv.FormatUint(assignedUserID, 10))

	var record Record
	if err := c.do(ctx, http.MethodPost, "/rewards", query, input, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// RedeemReward redeems a reward for the caller.
func (c *Client) RedeemReward(ctx context.Context, id uint64, identity Identity) (*RedemptionResult, error) {
	var result RedemptionResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/rewards/%d/redeem", id), identity.query(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteReward removes a reward. Admin only.
func (c *Client) DeleteReward(ctx context.Context, id uint64, identity Identity) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rewards/%d", id), identity.query(), nil, nil)
}

func (c *Client) listRecords(ctx context.Context, path string, identity Identity) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, http.MethodGet, path, identity.query(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
