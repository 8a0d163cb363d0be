package repository

import (
	"context"

	"github.com/oggyb/socialgraph/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConnectionRepository provides data access methods for the Connection model.
// It encapsulates all queries over follow edges between users.
type ConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new repository bound to the given DB connection.
func NewConnectionRepository(database *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: database}
}

// Create inserts the edge follower -> followed.
//
// Behavior:
//   - If the (follower_id, followed_id) pair already exists, nothing is written
//     and created is false.
//   - Composite PK guarantees one row per ordered pair.
//
// Example:
//
//	created, err := repo.Create(ctx, 1, 2) // user 1 follows user 2
func (r *ConnectionRepository) Create(ctx context.Context, followerID, followedID uint64) (bool, error) {
	edge := db.Connection{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the edge and reports whether it existed.
func (r *ConnectionRepository) Delete(ctx context.Context, followerID, followedID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&db.Connection{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists checks whether follower follows followed.
func (r *ConnectionRepository) Exists(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Connection{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowedIDs returns the ids of every user the given user follows.
func (r *ConnectionRepository) FollowedIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Connection{}).
		Where("follower_id = ?", followerID).
		Order("followed_id").
		Pluck("followed_id", &ids).Error
	return ids, err
}

// FollowedUsers returns the users the given user follows, ordered by id.
func (r *ConnectionRepository) FollowedUsers(ctx context.Context, followerID uint64) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("JOIN connections c ON c.followed_id = u.id").
		Where("c.follower_id = ?", followerID).
		Order("u.id").
		Find(&users).Error
	return users, err
}

// Followers returns the users following the given user, ordered by id.
func (r *ConnectionRepository) Followers(ctx context.Context, followedID uint64) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("JOIN connections c ON c.follower_id = u.id").
		Where("c.followed_id = ?", followedID).
		Order("u.id").
		Find(&users).Error
	return users, err
}
