package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/feed"
	"github.com/oggyb/socialgraph/internal/graph"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/testutil"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

func setupComposer(t *testing.T) (*feed.Composer, *graph.Graph, *gorm.DB) {
	t.Helper()
	dbase := testutil.NewDB(t)
	g := graph.New(repository.NewConnectionRepository(dbase))
	return feed.NewComposer(g, repository.NewPostRepository(dbase)), g, dbase
}

func newUser(t *testing.T, dbase *gorm.DB, name string) db.User {
	t.Helper()
	u := db.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Salt: "s", AuthToken: "tok-" + name}
	testutil.MustCreate(t, dbase, &u)
	return u
}

func texts(posts []db.Post) []string {
	return lo.Map(posts, func(p db.Post, _ int) string { return p.Text })
}

// Alice follows nobody yet, so she sees the popular posts; once she follows
// bob she sees bob's post even though it has no votes.
func TestColdStartThenFollowing(t *testing.T) {
	ctx := context.Background()
	c, g, dbase := setupComposer(t)

	alice := newUser(t, dbase, "alice")
	bob := newUser(t, dbase, "bob")
	carol := newUser(t, dbase, "carol")

	testutil.MustCreate(t, dbase, &db.Post{UserID: carol.ID, Text: "popular", PubliclyShared: true, Score: 3})
	testutil.MustCreate(t, dbase, &db.Post{UserID: bob.ID, Text: "bob's post"})

	f, err := c.ComputeFeed(ctx, &alice)
	require.NoError(t, err)
	assert.Equal(t, feed.SourcePopular, f.Source)
	assert.Equal(t, []string{"popular"}, texts(f.Posts))

	require.NoError(t, g.Follow(ctx, alice.ID, bob.ID))

	f, err = c.ComputeFeed(ctx, &alice)
	require.NoError(t, err)
	assert.Equal(t, feed.SourceFollowing, f.Source)
	assert.Equal(t, []string{"bob's post"}, texts(f.Posts))
}

// Following users who never posted still falls back to the popular feed.
func TestFollowingWithoutPostsFallsBack(t *testing.T) {
	ctx := context.Background()
	c, g, dbase := setupComposer(t)

	alice := newUser(t, dbase, "alice")
	bob := newUser(t, dbase, "bob")
	require.NoError(t, g.Follow(ctx, alice.ID, bob.ID))

	f, err := c.ComputeFeed(ctx, &alice)
	require.NoError(t, err)
	assert.Equal(t, feed.SourcePopular, f.Source)
	assert.Empty(t, f.Posts)
}

func TestPopularNeverSurfacesLowScoreOrPrivate(t *testing.T) {
	ctx := context.Background()
	c, _, dbase := setupComposer(t)
	author := newUser(t, dbase, "author")

	posts := []db.Post{
		{UserID: author.ID, Text: "zero", PubliclyShared: true, Score: 0},
		{UserID: author.ID, Text: "one", PubliclyShared: true, Score: 1},
		{UserID: author.ID, Text: "negative", PubliclyShared: true, Score: -4},
		{UserID: author.ID, Text: "private", PubliclyShared: false, Score: 10},
		{UserID: author.ID, Text: "two", PubliclyShared: true, Score: 2},
		{UserID: author.ID, Text: "seven", PubliclyShared: true, Score: 7},
	}
	testutil.MustCreate(t, dbase, &posts)

	f, err := c.ComputeFeed(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, feed.SourcePopular, f.Source)
	assert.Equal(t, []string{"seven", "two"}, texts(f.Posts))
	for _, p := range f.Posts {
		assert.True(t, p.PubliclyShared)
		assert.Greater(t, p.Score, feed.PopularMinScore)
	}
}

func TestFollowingFeedNewestFirstAndPaged(t *testing.T) {
	ctx := context.Background()
	c, g, dbase := setupComposer(t)

	alice := newUser(t, dbase, "alice")
	bob := newUser(t, dbase, "bob")
	require.NoError(t, g.Follow(ctx, alice.ID, bob.ID))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		testutil.MustCreate(t, dbase, &db.Post{
			UserID:    bob.ID,
			Text:      string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	f, err := c.ComputeFeed(ctx, &alice)
	require.NoError(t, err)
	require.Len(t, f.Posts, 7)

	cur := pagination.New(pagination.FlagFeed)
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, texts(f.Page(cur)))
	assert.Equal(t, []string{"b", "a"}, texts(f.Page(cur.Bump())))
	assert.Empty(t, f.Page(cur.Bump().Bump()))
}
