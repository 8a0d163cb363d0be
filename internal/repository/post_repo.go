package repository

import (
	"context"

	"github.com/oggyb/socialgraph/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository covers posts, shares and what hangs off them (comments, votes).
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(database *gorm.DB) *PostRepository {
	return &PostRepository{db: database}
}

func (r *PostRepository) Create(ctx context.Context, post *db.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID returns gorm.ErrRecordNotFound when the post does not exist.
func (r *PostRepository) GetByID(ctx context.Context, id uint64) (*db.Post, error) {
	var post db.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByAuthors returns posts written by any of the given users, most recent first.
//
// Behavior:
//   - Ordered by created_at DESC, id DESC so posts created within the same
//     clock tick still come out newest-first.
//   - An empty author list yields no posts.
func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []uint64) ([]db.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []db.Post
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// ListPopular returns publicly shared posts whose score is strictly greater
// than minScore, ordered by score DESC, created_at DESC, id DESC.
//
// Example:
//
//	repo.ListPopular(ctx, 1) // cold-start candidates
func (r *PostRepository) ListPopular(ctx context.Context, minScore int) ([]db.Post, error) {
	var posts []db.Post
	err := r.db.WithContext(ctx).
		Where("publicly_shared = ? AND score > ?", true, minScore).
		Order("score DESC, created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) CreateShare(ctx context.Context, share *db.Share) error {
	return r.db.WithContext(ctx).Create(share).Error
}

// GetShare returns gorm.ErrRecordNotFound when the share does not exist.
func (r *PostRepository) GetShare(ctx context.Context, id uint64) (*db.Share, error) {
	var share db.Share
	if err := r.db.WithContext(ctx).First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *PostRepository) CreateComment(ctx context.Context, comment *db.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetComment returns gorm.ErrRecordNotFound when the comment does not exist.
func (r *PostRepository) GetComment(ctx context.Context, id uint64) (*db.Comment, error) {
	var comment db.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Vote records userID's vote on an item and rewrites the item's score.
//
// Behavior:
//   - One vote per (user, item); voting again overwrites the direction.
//   - The item's score is recomputed as ups minus downs inside the same
//     transaction and returned.
//   - kind must be db.ItemPost or db.ItemShare.
func (r *PostRepository) Vote(ctx context.Context, userID uint64, kind string, itemID uint64, up bool) (int, error) {
	var score int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := db.Vote{UserID: userID, ItemKind: kind, ItemID: itemID, Up: up}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_kind"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"up", "updated_at"}),
		}).Create(&vote).Error; err != nil {
			return err
		}

		var err error
		score, err = rescore(tx, kind, itemID)
		return err
	})
	return score, err
}

// rescore recomputes an item's net vote count and stores it on posts and shares.
func rescore(tx *gorm.DB, kind string, itemID uint64) (int, error) {
	var score int64
	err := tx.Model(&db.Vote{}).
		Select("COALESCE(SUM(CASE WHEN up THEN 1 ELSE -1 END), 0)").
		Where("item_kind = ? AND item_id = ?", kind, itemID).
		Scan(&score).Error
	if err != nil {
		return 0, err
	}

	var model any
	switch kind {
	case db.ItemPost:
		model = &db.Post{}
	case db.ItemShare:
		model = &db.Share{}
	default:
		return int(score), nil
	}
	return int(score), tx.Model(model).Where("id = ?", itemID).Update("score", score).Error
}
