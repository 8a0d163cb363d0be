package repository

import (
	"context"

	"github.com/oggyb/socialgraph/internal/db"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: database}
}

func (r *ActivityRepository) Create(ctx context.Context, a *db.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListByAction returns activities with the given action, oldest first.
func (r *ActivityRepository) ListByAction(ctx context.Context, action string) ([]db.Activity, error) {
	var out []db.Activity
	err := r.db.WithContext(ctx).Where("action = ?", action).Order("id").Find(&out).Error
	return out, err
}
