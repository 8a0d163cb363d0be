package repository

import (
	"context"
	"strings"

	"github.com/oggyb/socialgraph/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DirectoryRepository looks up the non-user entities search can return:
// groups, code modules and hashtags.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(database *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: database}
}

// GroupsByNames returns groups whose name equals any of names, ordered by id.
func (r *DirectoryRepository) GroupsByNames(ctx context.Context, names []string) ([]db.Group, error) {
	var groups []db.Group
	err := r.db.WithContext(ctx).Where("name IN ?", names).Order("id").Find(&groups).Error
	return groups, err
}

// GroupsByRank returns every group, highest rank first (ties by id).
func (r *DirectoryRepository) GroupsByRank(ctx context.Context) ([]db.Group, error) {
	var groups []db.Group
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}, Desc: true}).
		Order("id").
		Find(&groups).Error
	return groups, err
}

// ModulesByNames returns code modules whose name equals any of names, ordered by id.
func (r *DirectoryRepository) ModulesByNames(ctx context.Context, names []string) ([]db.CodeModule, error) {
	var modules []db.CodeModule
	err := r.db.WithContext(ctx).Where("name IN ?", names).Order("id").Find(&modules).Error
	return modules, err
}

// HashtagsTagged returns hashtags carrying tag (case-insensitive), with their tags loaded.
func (r *DirectoryRepository) HashtagsTagged(ctx context.Context, tag string) ([]db.Hashtag, error) {
	var hashtags []db.Hashtag
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN hashtag_tags ht ON ht.hashtag_id = hashtags.id").
		Where("ht.tag = ?", strings.ToLower(tag)).
		Order("hashtags.id").
		Find(&hashtags).Error
	return hashtags, err
}

// CreateHashtag stores a hashtag with its tags lowercased.
func (r *DirectoryRepository) CreateHashtag(ctx context.Context, userID uint64, name string, tags []string) (*db.Hashtag, error) {
	h := db.Hashtag{UserID: userID, Name: name}
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		h.Tags = append(h.Tags, db.HashtagTag{Tag: t})
	}
	if err := r.db.WithContext(ctx).Create(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// GetModule returns gorm.ErrRecordNotFound when the module does not exist.
func (r *DirectoryRepository) GetModule(ctx context.Context, id uint64) (*db.CodeModule, error) {
	var m db.CodeModule
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetProposal returns gorm.ErrRecordNotFound when the proposal does not exist.
func (r *DirectoryRepository) GetProposal(ctx context.Context, id uint64) (*db.Proposal, error) {
	var p db.Proposal
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
