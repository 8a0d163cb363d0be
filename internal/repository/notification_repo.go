package repository

import (
	"context"

	"github.com/oggyb/socialgraph/internal/db"

	"gorm.io/gorm"
)

// NotificationRepository persists and lists notifications. Rows are never updated.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: database}
}

func (r *NotificationRepository) Create(ctx context.Context, n *db.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListForRecipient returns one window of the recipient's notifications, newest first.
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID uint64, offset, limit int) ([]db.Notification, error) {
	var out []db.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) CountForRecipient(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Notification{}).
		Where("user_id = ?", recipientID).
		Count(&count).Error
	return count, err
}
