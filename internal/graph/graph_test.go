package graph_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/graph"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/testutil"
)

func setupGraph(t *testing.T) (*graph.Graph, []db.User) {
	t.Helper()
	dbase := testutil.NewDB(t)
	users := []db.User{
		{Name: "alice", Email: "alice@example.com", PasswordHash: "x", Salt: "s", AuthToken: "t1"},
		{Name: "bob", Email: "bob@example.com", PasswordHash: "x", Salt: "s", AuthToken: "t2"},
		{Name: "carol", Email: "carol@example.com", PasswordHash: "x", Salt: "s", AuthToken: "t3"},
	}
	testutil.MustCreate(t, dbase, &users)
	return graph.New(repository.NewConnectionRepository(dbase)), users
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	ctx := context.Background()
	g, users := setupGraph(t)
	alice, bob := users[0].ID, users[1].ID

	ok, err := g.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Follow(ctx, alice, bob))

	ok, err = g.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	followed, err := g.FollowedBy(ctx, alice)
	require.NoError(t, err)
	assert.Contains(t, lo.Map(followed, func(u db.User, _ int) uint64 { return u.ID }), bob)

	followers, err := g.FollowersOf(ctx, bob)
	require.NoError(t, err)
	assert.Contains(t, lo.Map(followers, func(u db.User, _ int) uint64 { return u.ID }), alice)

	require.NoError(t, g.Unfollow(ctx, alice, bob))

	ok, err = g.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	followed, err = g.FollowedBy(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, followed)
}

func TestFollowErrors(t *testing.T) {
	ctx := context.Background()
	g, users := setupGraph(t)
	alice, bob := users[0].ID, users[1].ID

	err := g.Follow(ctx, alice, alice)
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)

	require.NoError(t, g.Follow(ctx, alice, bob))
	err = g.Follow(ctx, alice, bob)
	assert.ErrorIs(t, err, svcErr.ErrConflict)

	err = g.Unfollow(ctx, bob, alice)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestFollowedIDs(t *testing.T) {
	ctx := context.Background()
	g, users := setupGraph(t)
	alice := users[0].ID

	require.NoError(t, g.Follow(ctx, alice, users[2].ID))
	require.NoError(t, g.Follow(ctx, alice, users[1].ID))

	ids, err := g.FollowedIDs(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{users[1].ID, users[2].ID}, ids)
}
