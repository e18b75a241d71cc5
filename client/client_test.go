package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientNotFoundClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"code": "NOT_FOUND", "message": "Tarea no encontrada"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetTask(context.Background(), 999)

	require.True(t, IsKind(err, KindNotFound))

	var clientErr *Error
	require.ErrorAs(t, err, &clientErr)
	require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	require.Equal(t, "Tarea no encontrada", clientErr.Message)
}

func TestClientServerErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListUsers(context.Background(), Identity{})

	require.True(t, IsKind(err, KindServerError))

	var clientErr *Error
	require.ErrorAs(t, err, &clientErr)
	require.Equal(t, http.StatusInternalServerError, clientErr.StatusCode)
}

func TestClientTimeoutClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, WithTimeout(20*time.Millisecond))
	_, err := c.ListUsers(context.Background(), Identity{})

	require.True(t, IsKind(err, KindTimeout))
}

func TestClientNetworkUnreachableClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL)
	_, err := c.ListUsers(context.Background(), Identity{})

	require.True(t, IsKind(err, KindNetworkUnreachable))
}

func TestClientValidationBeforeDispatch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.Login(context.Background(), "", "secreto")
	require.True(t, IsKind(err, KindValidation))

	_, err = c.CreateTask(context.Background(), Identity{IsAdmin: true}, 2, TaskInput{})
	require.True(t, IsKind(err, KindValidation))

	require.Zero(t, requests)
}

func TestClientSendsIdentityQuery(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		json.NewEncoder(w).Encode([]Record{})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListTasks(context.Background(), Identity{UserID: 7, IsAdmin: true})
	require.NoError(t, err)

	require.Equal(t, []string{"7"}, query["userId"])
	require.Equal(t, []string{"true"}, query["isAdmin"])
}

func TestClientCompleteTaskParsesPoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/tasks/7/complete", r.URL.Path)
		require.Equal(t, "2026-08-31", r.URL.Query().Get("clientDate"))
		json.NewEncoder(w).Encode(map[string]any{
			"task":   map[string]any{"id": 7, "completed": true},
			"points": 15,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.CompleteTask(context.Background(), 7, Identity{UserID: 2}, "2026-08-31")
	require.NoError(t, err)
	require.NotNil(t, result.Points)
	require.Equal(t, 15, *result.Points)
	require.Equal(t, true, result.Task["completed"])
}

func TestClientResetDailyTasksParsesCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/reset-daily", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"reset": 3})
	}))
	defer server.Close()

	c := New(server.URL)
	count, err := c.ResetDailyTasks(context.Background(), Identity{UserID: 1, IsAdmin: true})
	require.NoError(t, err)
	require.Equal(t, 3, count)
}
