package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTasks(t *testing.T) {
	users := BuildUserIndex([]User{
		{ID: 2, Username: "alice"},
		{ID: 3, Username: "bob"},
	})

	records := []Record{
		{
			"id":             float64(1),
			"title":          "Lavar los platos",
			"description":    "Despues de cenar",
			"rewardPoints":   float64(10),
			"completed":      true,
			"daily":          true,
			"assignedUserId": float64(2),
		},
		nil,
		{
			"id":           float64(2),
			"title":        "Sacar la basura",
			"rewardPoints": float64(5),
			"completed":    "yes",
			"daily":        nil,
		},
	}

	items := NormalizeTasks(records, users)
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, uint64(1), first.ID)
	require.Equal(t, "Lavar los platos", first.Title)
	require.Equal(t, 10, first.Points)
	require.True(t, first.Completed)
	require.True(t, first.Daily)
	require.NotNil(t, first.AssignedUserID)
	require.Equal(t, uint64(2), *first.AssignedUserID)
	require.Equal(t, "alice", first.AssignedUsername)

	// Non-boolean flags coerce to false, missing assignment stays nil.
	second := items[1]
	require.False(t, second.Completed)
	require.False(t, second.Daily)
	require.Nil(t, second.AssignedUserID)
	require.Empty(t, second.AssignedUsername)
}

func TestNormalizeRewards(t *testing.T) {
	users := BuildUserIndex([]User{{ID: 2, Username: "alice"}})

	records := []Record{
		{
			"id":             float64(4),
			"title":          "Helado",
			"price":          float64(20),
			"redeemed":       false,
			"assignedUserId": float64(2),
		},
	}

	items := NormalizeRewards(records, users)
	require.Len(t, items, 1)
	require.Equal(t, 20, items[0].Points)
	require.False(t, items[0].Redeemed)
	require.Equal(t, "alice", items[0].AssignedUsername)
}

func TestNormalizeUnknownAssignee(t *testing.T) {
	items := NormalizeTasks([]Record{
		{"id": float64(1), "title": "Barrer", "assignedUserId": float64(99)},
	}, UserIndex{})

	require.Len(t, items, 1)
	require.NotNil(t, items[0].AssignedUserID)
	require.Empty(t, items[0].AssignedUsername)
}

func TestRemoveItem(t *testing.T) {
	items := []Item{{ID: 1}, {ID: 2}, {ID: 3}}

	trimmed := RemoveItem(items, 2)
	require.Len(t, trimmed, 2)
	require.Equal(t, uint64(1), trimmed[0].ID)
	require.Equal(t, uint64(3), trimmed[1].ID)

	// Unknown ids leave the list unchanged.
	require.Len(t, RemoveItem(items, 99), 3)
}

func TestCoercionsFromInProcessValues(t *testing.T) {
	records := []Record{
		{"id": uint64(5), "title": "Planchar", "rewardPoints": 8, "completed": true},
	}

	items := NormalizeTasks(records, nil)
	require.Len(t, items, 1)
	require.Equal(t, uint64(5), items[0].ID)
	require.Equal(t, 8, items[0].Points)
}
