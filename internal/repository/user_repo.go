package repository

import (
	"context"
	"errors"

	"github.com/oggyb/socialgraph/internal/db"

	"gorm.io/gorm"
)

// UserRepository provides data access methods for the User model, including
// the cascading destroy of everything a user owns.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID returns gorm.ErrRecordNotFound when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByName returns nil, nil when no user has exactly this name.
func (r *UserRepository) FindByName(ctx context.Context, name string) (*db.User, error) {
	return r.findOne(ctx, "name = ?", name)
}

// FindByEmail returns nil, nil when no user has this email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByNames returns users whose name equals any of names, ordered by id.
func (r *UserRepository) FindByNames(ctx context.Context, names []string) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("id").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "name = ?", name)
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserRepository) TokenTaken(ctx context.Context, token string) (bool, error) {
	return r.exists(ctx, "auth_token = ?", token)
}

// UpdateToken replaces the user's auth token.
func (r *UserRepository) UpdateToken(ctx context.Context, id uint64, token string) error {
	res := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Update("auth_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DestroyCascade deletes the user and everything it owns in one transaction.
//
// Behavior:
//   - Posts, shares, code modules and proposals authored by the user, shares
//     of those posts, proposals on those modules, and the comments and votes
//     attached to any of them.
//   - Comments the user wrote elsewhere and votes the user cast elsewhere;
//     scores of the items those votes touched are recomputed.
//   - Messages sent or received, notifications received, hashtags with their
//     tags, activities.
//   - Follow edges in both directions.
//
// Returns gorm.ErrRecordNotFound when the user does not exist.
func (r *UserRepository) DestroyCascade(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs, shareIDs, moduleIDs, proposalIDs, hashtagIDs []uint64
		lookups := []struct {
			model any
			query string
			args  []any
			out   *[]uint64
		}{
			{&db.Post{}, "user_id = ?", []any{id}, &postIDs},
			{&db.CodeModule{}, "user_id = ?", []any{id}, &moduleIDs},
			{&db.Hashtag{}, "user_id = ?", []any{id}, &hashtagIDs},
		}
		for _, l := range lookups {
			if err := tx.Model(l.model).Where(l.query, l.args...).Pluck("id", l.out).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&db.Share{}).
			Where("user_id = ? OR post_id IN ?", id, postIDs).
			Pluck("id", &shareIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.Proposal{}).
			Where("user_id = ? OR code_module_id IN ?", id, moduleIDs).
			Pluck("id", &proposalIDs).Error; err != nil {
			return err
		}

		// votes cast elsewhere change other users' scores
		var cast []db.Vote
		if err := tx.Where("user_id = ?", id).Find(&cast).Error; err != nil {
			return err
		}

		attached := map[string][]uint64{
			db.ItemPost:     postIDs,
			db.ItemShare:    shareIDs,
			db.ItemModule:   moduleIDs,
			db.ItemProposal: proposalIDs,
		}
		for kind, ids := range attached {
			if err := deleteAttached(tx, kind, ids); err != nil {
				return err
			}
		}

		steps := []struct {
			model any
			query string
			args  []any
		}{
			{&db.Comment{}, "commenter_id = ?", []any{id}},
			{&db.Vote{}, "user_id = ?", []any{id}},
			{&db.Share{}, "id IN ?", []any{shareIDs}},
			{&db.Post{}, "id IN ?", []any{postIDs}},
			{&db.Proposal{}, "id IN ?", []any{proposalIDs}},
			{&db.CodeModule{}, "id IN ?", []any{moduleIDs}},
			{&db.Message{}, "sender_id = ? OR recipient_id = ?", []any{id, id}},
			{&db.Notification{}, "user_id = ?", []any{id}},
			{&db.HashtagTag{}, "hashtag_id IN ?", []any{hashtagIDs}},
			{&db.Hashtag{}, "id IN ?", []any{hashtagIDs}},
			{&db.Activity{}, "user_id = ?", []any{id}},
			{&db.Connection{}, "follower_id = ? OR followed_id = ?", []any{id, id}},
		}
		for _, s := range steps {
			if err := tx.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
				return err
			}
		}

		for _, v := range cast {
			if _, err := rescore(tx, v.ItemKind, v.ItemID); err != nil {
				return err
			}
		}

		res := tx.Delete(&db.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// deleteAttached removes comments and votes hanging off the given items.
func deleteAttached(tx *gorm.DB, kind string, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("item_kind = ? AND item_id IN ?", kind, ids).Delete(&db.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("item_kind = ? AND item_id IN ?", kind, ids).Delete(&db.Vote{}).Error
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.User{}).Where(query, args...).Count(&count).Error
	return count > 0, err
}
