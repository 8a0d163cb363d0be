// Package notify synthesizes and persists notifications for social actions.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

// Mentionable is any item whose text may @mention users.
type Mentionable interface {
	MentionItem() (id uint64, text string)
}

// Dispatcher writes one notification per social action to its recipient.
type Dispatcher struct {
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
	userCache     *cache.UserCache
	redis         *cache.RedisCache
	dedupeWindow  time.Duration
	log           *slog.Logger
}

type Options struct {
	Notifications *repository.NotificationRepository
	Users         *repository.UserRepository
	// UserCache is optional; mention lookups go to the database without it.
	UserCache *cache.UserCache
	// Redis is optional; duplicate suppression is off without it.
	Redis        *cache.RedisCache
	DedupeWindow time.Duration
	Logger       *slog.Logger
}

func NewDispatcher(opts Options) *Dispatcher {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		notifications: opts.Notifications,
		users:         opts.Users,
		userCache:     opts.UserCache,
		redis:         opts.Redis,
		dedupeWindow:  opts.DedupeWindow,
		log:           log,
	}
}

// Notify records that actor did action to recipientID, optionally about item.
//
// Behavior:
//   - recipient == actor → (nil, nil), nothing written.
//   - action outside the closed set → ErrInvalidArgument, nothing written.
//   - the same (recipient, actor, action, item) inside the dedupe window → (nil, nil).
func (d *Dispatcher) Notify(ctx context.Context, recipientID uint64, action Action, actor *db.User, item *uint64) (*db.Notification, error) {
	if actor == nil || recipientID == actor.ID {
		return nil, nil
	}

	message, err := action.Render(actor.Name)
	if err != nil {
		return nil, err
	}

	var marker string
	if d.dedupeWindow > 0 && d.redis != nil {
		key := d.redis.KeyForNotification(recipientID, actor.ID, string(action), item)
		first, err := d.redis.MarkOnce(ctx, key, d.dedupeWindow)
		switch {
		case err != nil:
			// dedupe is best-effort; a Redis outage must not drop notifications
			d.log.Warn("notification dedupe unavailable", "err", err)
		case !first:
			d.log.Debug("duplicate notification dropped", "recipient", recipientID, "actor", actor.ID, "action", action)
			return nil, nil
		default:
			marker = key
		}
	}

	n := &db.Notification{
		UserID:      recipientID,
		OtherUserID: actor.ID,
		Action:      string(action),
		Item:        item,
		Message:     message,
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		// a failed insert must not hold the dedupe window
		if marker != "" {
			if derr := d.redis.Client.Del(ctx, marker).Err(); derr != nil {
				d.log.Warn("notification dedupe marker not cleared", "err", derr)
			}
		}
		return nil, err
	}

	d.log.Debug("notification created", "id", n.ID, "recipient", recipientID, "action", action)
	return n, nil
}

// NotifyMentioned sends a mention notification to every existing user the
// item's text mentions. Unknown names are skipped; lookup failures are
// collected and returned after the remaining candidates were tried.
func (d *Dispatcher) NotifyMentioned(ctx context.Context, actor *db.User, item Mentionable) ([]db.Notification, error) {
	itemID, text := item.MentionItem()

	var (
		out  []db.Notification
		errs []error
	)
	for _, name := range MentionCandidates(text) {
		user, err := d.lookupUser(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if user == nil {
			continue
		}
		id := itemID
		n, err := d.Notify(ctx, user.ID, ActionMention, actor, &id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, errors.Join(errs...)
}

func (d *Dispatcher) lookupUser(ctx context.Context, name string) (*db.User, error) {
	if u, ok := d.userCache.Get(ctx, name); ok && u.Name == name {
		return u, nil
	}
	u, err := d.users.FindByName(ctx, name)
	if err != nil || u == nil {
		return nil, err
	}
	d.userCache.Set(ctx, *u)
	return u, nil
}

// Page is one window of a recipient's notifications.
type Page struct {
	Notifications []db.Notification
	Total         int64
	HasNext       bool
}

// List returns the cursor's page of the recipient's notifications, newest first.
func (d *Dispatcher) List(ctx context.Context, recipientID uint64, c pagination.Cursor) (*Page, error) {
	total, err := d.notifications.CountForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	items, err := d.notifications.ListForRecipient(ctx, recipientID, c.Offset(), pagination.PageSize)
	if err != nil {
		return nil, err
	}
	return &Page{
		Notifications: items,
		Total:         total,
		HasNext:       c.HasNext(int(total)),
	}, nil
}
