// Package graph answers and mutates follow relationships between users.
package graph

import (
	"context"

	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/repository"
)

// Graph is the follow graph. Edges are directed: follower → followed.
type Graph struct {
	conns *repository.ConnectionRepository
}

func New(conns *repository.ConnectionRepository) *Graph {
	return &Graph{conns: conns}
}

func (g *Graph) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	return g.conns.Exists(ctx, followerID, followedID)
}

// Follow creates the edge follower → followed.
//
// Errors:
//   - ErrInvalidArgument when a user tries to follow themself.
//   - ErrConflict when the edge already exists.
func (g *Graph) Follow(ctx context.Context, followerID, followedID uint64) error {
	if followerID == followedID {
		return svcErr.InvalidArgument("cannot follow yourself")
	}
	created, err := g.conns.Create(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if !created {
		return svcErr.Conflict("user %d already follows user %d", followerID, followedID)
	}
	return nil
}

// Unfollow removes the edge and fails with ErrNotFound when it is absent.
func (g *Graph) Unfollow(ctx context.Context, followerID, followedID uint64) error {
	deleted, err := g.conns.Delete(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if !deleted {
		return svcErr.NotFound("user %d does not follow user %d", followerID, followedID)
	}
	return nil
}

// FollowedBy returns the users userID follows, ordered by id.
func (g *Graph) FollowedBy(ctx context.Context, userID uint64) ([]db.User, error) {
	return g.conns.FollowedUsers(ctx, userID)
}

// FollowersOf returns the users following userID, ordered by id.
func (g *Graph) FollowersOf(ctx context.Context, userID uint64) ([]db.User, error) {
	return g.conns.Followers(ctx, userID)
}

// FollowedIDs is FollowedBy without loading the user rows.
func (g *Graph) FollowedIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return g.conns.FollowedIDs(ctx, userID)
}
