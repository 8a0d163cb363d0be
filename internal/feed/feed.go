// Package feed composes a viewer's home feed from the follow graph, falling
// back to publicly shared popular posts for cold-start viewers.
package feed

import (
	"context"

	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/graph"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

// PopularMinScore is the score a post must strictly exceed to show up in the
// fallback feed.
const PopularMinScore = 1

// Source tells which path produced a feed.
type Source string

const (
	SourceFollowing Source = "following"
	SourcePopular   Source = "popular"
)

type Feed struct {
	Posts  []db.Post
	Source Source
}

// Page returns the cursor's page. Posts are already newest/most popular first.
func (f *Feed) Page(c pagination.Cursor) []db.Post {
	return pagination.Window(f.Posts, c)
}

type Composer struct {
	graph *graph.Graph
	posts *repository.PostRepository
}

func NewComposer(g *graph.Graph, posts *repository.PostRepository) *Composer {
	return &Composer{graph: g, posts: posts}
}

// ComputeFeed returns the viewer's feed. viewer may be nil for anonymous visitors.
//
// Behavior:
//   - Viewer follows users who posted → their posts, created_at DESC, id DESC.
//   - Otherwise → public posts with score > PopularMinScore, score DESC, then newest.
func (c *Composer) ComputeFeed(ctx context.Context, viewer *db.User) (*Feed, error) {
	if viewer != nil {
		followed, err := c.graph.FollowedIDs(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if len(followed) > 0 {
			posts, err := c.posts.ListByAuthors(ctx, followed)
			if err != nil {
				return nil, err
			}
			if len(posts) > 0 {
				return &Feed{Posts: posts, Source: SourceFollowing}, nil
			}
		}
	}

	posts, err := c.posts.ListPopular(ctx, PopularMinScore)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Source: SourcePopular}, nil
}
