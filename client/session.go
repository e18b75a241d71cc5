package client

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// State is the session lifecycle state.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	// StateLoggingOut is visible between the start of a logout and the
	// final transition to unauthenticated, so dependent views can
	// unmount before the session clears. The transition is driven by
	// completion, not by a wall-clock delay.
	StateLoggingOut
)

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	Success bool
	IsAdmin bool
	Err     error
}

// Session tracks the current user snapshot and authentication state.
// At most one user is tracked at a time, and the session is never
// restored across restarts: construction clears the persisted snapshot,
// keeping only the last daily-check date.
type Session struct {
	client *Client
	store  Store

	mu    sync.Mutex
	state State
	user  *User
}

// NewSession creates a Session over the given client and store, forcing
// a fresh login by clearing any persisted snapshot.
func NewSession(client *Client, store Store) *Session {
	store.Delete(storeKeyUser)
	store.Delete(storeKeyIsAdmin)

	return &Session{
		client: client,
		store:  store,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns a copy of the current user snapshot, if authenticated.
func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Login resolves the username against the full user list, bypasses the
// password check for non-admins, and verifies the admin credential
// against the server. On success the snapshot is persisted and the
// session becomes authenticated.
func (s *Session) Login(ctx context.Context, username, password string) LoginResult {
	if username == "" {
		return LoginResult{Err: validationError("username is required")}
	}

	users, err := s.client.ListUsers(ctx, Identity{})
	if err != nil {
		return LoginResult{Err: err}
	}

	var found *User
	for i := range users {
		if users[i].Username == username {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return LoginResult{Err: &Error{Kind: KindNotFound, Message: "Usuario no encontrado"}}
	}

	if found.Admin {
		if _, err := s.client.Login(ctx, username, password); err != nil {
			return LoginResult{Err: err}
		}
	}

	if err := s.persist(*found); err != nil {
		return LoginResult{Err: err}
	}

	s.mu.Lock()
	s.user = found
	s.state = StateAuthenticated
	s.mu.Unlock()

	return LoginResult{Success: true, IsAdmin: found.Admin}
}

// Logout clears the persisted snapshot and the in-memory state, passing
// through the logging-out state so observers see the transition order:
// logging out, storage cleared, state cleared, unauthenticated.
func (s *Session) Logout() {
	s.mu.Lock()
	s.state = StateLoggingOut
	s.mu.Unlock()

	s.store.Delete(storeKeyUser)
	s.store.Delete(storeKeyIsAdmin)

	s.mu.Lock()
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()
}

// Identity returns the caller identity for resource calls.
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return Identity{}, false
	}
	return Identity{UserID: s.user.ID, IsAdmin: s.user.Admin}, true
}

// UpdateUserPoints overwrites the points field in memory and in the
// persisted snapshot. It never calls the server: the authoritative value
// must already have been applied remotely by the action that produced it.
func (s *Session) UpdateUserPoints(points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return validationError("no authenticated user")
	}

	s.user.Points = points
	return s.persistLocked(*s.user)
}

// CompleteTask completes the task and applies the resulting point total
// to the session: the server's value when provided, a local credit of
// rewardPoints otherwise.
func (s *Session) CompleteTask(ctx context.Context, taskID uint64, rewardPoints int) (int, error) {
	identity, ok := s.Identity()
	if !ok {
		return 0, validationError("no authenticated user")
	}

	result, err := s.client.CompleteTask(ctx, taskID, identity, time.Now().Format(DateLayout))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return 0, validationError("no authenticated user")
	}

	points := s.user.Points + rewardPoints
	if result.Points != nil {
		points = *result.Points
	}
	s.user.Points = points
	if err := s.persistLocked(*s.user); err != nil {
		return 0, err
	}
	return points, nil
}

// RedeemReward redeems the reward and applies the resulting point total
// to the session. When the snapshot shows fewer points than the price,
// the redemption is refused locally without issuing a request.
func (s *Session) RedeemReward(ctx context.Context, rewardID uint64, price int) (int, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return 0, validationError("no authenticated user")
	}
	if s.user.Points < price {
		s.mu.Unlock()
		return 0, validationError("Puntos insuficientes")
	}
	identity := Identity{UserID: s.user.ID, IsAdmin: s.user.Admin}
	s.mu.Unlock()

	result, err := s.client.RedeemReward(ctx, rewardID, identity)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return 0, validationError("no authenticated user")
	}

	points := s.user.Points - price
	if result.Points != nil {
		points = *result.Points
	}
	s.user.Points = points
	if err := s.persistLocked(*s.user); err != nil {
		return 0, err
	}
	return points, nil
}

func (s *Session) persist(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(user)
}

func (s *Session) persistLocked(user User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(storeKeyUser, string(encoded)); err != nil {
		return err
	}
	return s.store.Set(storeKeyIsAdmin, strconv.FormatBool(user.Admin))
}
