package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/testutil"
)

func TestDirectoryLookups(t *testing.T) {
	ctx := context.Background()
	dbase := testutil.NewDB(t)
	repo := repository.NewDirectoryRepository(dbase)

	groups := []db.Group{{Name: "Gophers", Rank: 2}, {Name: "rustaceans", Rank: 7}, {Name: "Lispers", Rank: 2}}
	testutil.MustCreate(t, dbase, &groups)
	testutil.MustCreate(t, dbase, &[]db.CodeModule{{Name: "gophers"}})

	ranked, err := repo.GroupsByRank(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "rustaceans", ranked[0].Name)
	assert.Equal(t, "Gophers", ranked[1].Name)
	assert.Equal(t, "Lispers", ranked[2].Name)

	byName, err := repo.GroupsByNames(ctx, []string{"Gophers", "gophers"})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	modules, err := repo.ModulesByNames(ctx, []string{"Gophers", "gophers"})
	require.NoError(t, err)
	require.Len(t, modules, 1)

	_, err = repo.CreateHashtag(ctx, 1, "#go", []string{"Go", "go", "backend"})
	require.NoError(t, err)
	_, err = repo.CreateHashtag(ctx, 1, "#rust", []string{"rust"})
	require.NoError(t, err)

	tagged, err := repo.HashtagsTagged(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "#go", tagged[0].Name)
	// duplicate "Go"/"go" collapsed to one tag
	assert.Len(t, tagged[0].Tags, 2)
}
