package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuca/portal/internal/model"
)

func TestRankUsers_TiesKeepStoredOrder(t *testing.T) {
	users := []model.User{
		{ID: "a", Points: 50},
		{ID: "b", Points: 30},
		{ID: "c", Points: 50, Role: model.RoleTrainer},
	}

	entries := RankUsers(users, "b")
	require.Len(t, entries, 3)

	ids := []string{entries[0].User.ID, entries[1].User.ID, entries[2].User.ID}
	ranks := []int{entries[0].Rank, entries[1].Rank, entries[2].Rank}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
	assert.Equal(t, []int{1, 2, 3}, ranks)

	assert.True(t, entries[1].IsTrainer)
	assert.True(t, entries[2].IsViewer)
	assert.False(t, entries[0].IsViewer)

	// Input is not reordered.
	assert.Equal(t, "b", users[1].ID)
}

func TestRankUsers_Medalists(t *testing.T) {
	users := []model.User{{ID: "a", Points: 4}, {ID: "b", Points: 3}, {ID: "c", Points: 2}, {ID: "d", Points: 1}}

	entries := RankUsers(users, "")
	for _, e := range entries {
		assert.Equal(t, e.Rank <= 3, e.IsMedalist, e.User.ID)
		assert.False(t, e.IsViewer)
	}
}

func TestRankUsers_Empty(t *testing.T) {
	assert.Empty(t, RankUsers(nil, "a"))
	assert.NotNil(t, RankUsers(nil, "a"))
}

func TestLeaderboardService_Standings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	standings, err := e.leaderboard.Standings(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, standings)

	alice := e.register(t, "Alice", model.RoleStudent)
	bob := e.register(t, "Bob", model.RoleNonStudent)
	_, err = e.userService.AddPoints(ctx, bob.Actor(), bob.ID, 40)
	require.NoError(t, err)

	standings, err = e.leaderboard.Standings(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, bob.ID, standings[0].User.ID)
	assert.Equal(t, alice.ID, standings[1].User.ID)
	assert.True(t, standings[1].IsViewer)
}
