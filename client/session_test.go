package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	users       []User
	loginCalls  int
	totalCalls  int
	pointsReply int
}

func (b *stubBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.totalCalls++
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			json.NewEncoder(w).Encode(b.users)

		case r.Method == http.MethodPost && r.URL.Path == "/users/login":
			b.loginCalls++
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			for _, user := range b.users {
				if user.Username == req.Username && (!user.Admin || req.Password == "secreto") {
					json.NewEncoder(w).Encode(user)
					return
				}
			}
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Usuario o contraseña incorrectos"})

		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/complete"):
			json.NewEncoder(w).Encode(map[string]any{
				"task":   map[string]any{"completed": true},
				"points": b.pointsReply,
			})

		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/redeem"):
			json.NewEncoder(w).Encode(map[string]any{
				"reward": map[string]any{"redeemed": true},
				"points": b.pointsReply,
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newSessionFixture(t *testing.T, backend *stubBackend) (*Session, *MemoryStore) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := NewMemoryStore()
	return NewSession(New(server.URL), store), store
}

func householdUsers() []User {
	return []User{
		{ID: 1, Username: "root", Admin: true},
		{ID: 2, Username: "alice", Points: 5},
	}
}

func TestSessionLoginNonAdminBypassesPassword(t *testing.T) {
	backend := &stubBackend{users: householdUsers()}
	session, store := newSessionFixture(t, backend)

	result := session.Login(context.Background(), "alice", "whatever")
	require.NoError(t, result.Err)
	require.True(t, result.Success)
	require.False(t, result.IsAdmin)
	require.Equal(t, StateAuthenticated, session.State())

	// No credential round-trip for passwordless members.
	require.Zero(t, backend.loginCalls)

	user, ok := session.User()
	require.True(t, ok)
	require.Equal(t, "alice", user.Username)

	stored, ok := store.Get(storeKeyIsAdmin)
	require.True(t, ok)
	require.Equal(t, "false", stored)
}

func TestSessionLoginAdminVerifiesCredential(t *testing.T) {
	backend := &stubBackend{users: householdUsers()}
	session, _ := newSessionFixture(t, backend)

	result := session.Login(context.Background(), "root", "wrong")
	require.Error(t, result.Err)
	require.False(t, result.Success)
	require.Equal(t, StateUnauthenticated, session.State())
	require.Equal(t, 1, backend.loginCalls)

	result = session.Login(context.Background(), "root", "secreto")
	require.NoError(t, result.Err)
	require.True(t, result.IsAdmin)
	require.Equal(t, StateAuthenticated, session.State())
}

func TestSessionLoginUnknownUser(t *testing.T) {
	backend := &stubBackend{users: householdUsers()}
	session, _ := newSessionFixture(t, backend)

	result := session.Login(context.Background(), "nobody", "")
	require.True(t, IsKind(result.Err, KindNotFound))
	require.Equal(t, StateUnauthenticated, session.State())
}

func TestSessionLogoutClearsState(t *testing.T) {
	backend := &stubBackend{users: householdUsers()}
	session, store := newSessionFixture(t, backend)

	require.True(t, session.Login(context.Background(), "alice", "").Success)

	session.Logout()
	require.Equal(t, StateUnauthenticated, session.State())

	_, ok := session.User()
	require.False(t, ok)
	_, ok = store.Get(storeKeyUser)
	require.False(t, ok)
	_, ok = store.Get(storeKeyIsAdmin)
	require.False(t, ok)
}

func TestNewSessionForcesFreshLogin(t *testing.T) {
	store := NewMemoryStore()
	store.Set(storeKeyUser, `{"id":2}`)
	store.Set(storeKeyIsAdmin, "false")
	store.Set(storeKeyLastDailyCheck, "2026-08-31")

	NewSession(New("http://localhost:0"), store)

	_, ok := store.Get(storeKeyUser)
	require.False(t, ok)
	_, ok = store.Get(storeKeyIsAdmin)
	require.False(t, ok)

	// The daily-check marker survives restarts.
	date, ok := store.Get(storeKeyLastDailyCheck)
	require.True(t, ok)
	require.Equal(t, "2026-08-31", date)
}

func TestSessionUpdateUserPoints(t *testing.T) {
	backend := &stubBackend{users: householdUsers()}
	session, store := newSessionFixture(t, backend)

	require.True(t, session.Login(context.Background(), "alice", "").Success)
	require.NoError(t, session.UpdateUserPoints(42))

	user, _ := session.User()
	require.Equal(t, 42, user.Points)

	raw, ok := store.Get(storeKeyUser)
	require.True(t, ok)
	var persisted User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Equal(t, 42, persisted.Points)
}

func TestSessionCompleteTaskUsesServerTotal(t *testing.T) {
	backend := &stubBackend{users: householdUsers(), pointsReply: 15}
	session, _ := newSessionFixture(t, backend)

	require.True(t, session.Login(context.Background(), "alice", "").Success)

	points, err := session.CompleteTask(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Equal(t, 15, points)

	user, _ := session.User()
	require.Equal(t, 15, user.Points)
}

func TestSessionRedeemRewardRefusedLocally(t *testing.T) {
	backend := &stubBackend{users: householdUsers()}
	session, _ := newSessionFixture(t, backend)

	require.True(t, session.Login(context.Background(), "alice", "").Success)
	callsAfterLogin := backend.totalCalls

	_, err := session.RedeemReward(context.Background(), 4, 50)
	require.True(t, IsKind(err, KindValidation))
	require.Equal(t, "validation: Puntos insuficientes", err.Error())

	// Refused before any request left the client.
	require.Equal(t, callsAfterLogin, backend.totalCalls)

	user, _ := session.User()
	require.Equal(t, 5, user.Points)
}

func TestSessionRedeemRewardDebits(t *testing.T) {
	backend := &stubBackend{users: householdUsers(), pointsReply: 2}
	session, _ := newSessionFixture(t, backend)

	require.True(t, session.Login(context.Background(), "alice", "").Success)

	points, err := session.RedeemReward(context.Background(), 4, 3)
	require.NoError(t, err)
	require.Equal(t, 2, points)
}
