package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/logger"
	"github.com/oggyb/socialgraph/internal/notify"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/testutil"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

type fixture struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	alice, bob db.User
}

func setup(t *testing.T, dedupe time.Duration) *fixture {
	t.Helper()
	dbase := testutil.NewDB(t)
	rc, _ := testutil.NewRedis(t)

	cfg := testutil.Config()
	userCache, err := cache.NewUserCache(cfg)
	require.NoError(t, err)

	users := []db.User{
		{Name: "alice", Email: "alice@example.com", PasswordHash: "x", Salt: "s", AuthToken: "t1"},
		{Name: "bob", Email: "bob@example.com", PasswordHash: "x", Salt: "s", AuthToken: "t2"},
	}
	testutil.MustCreate(t, dbase, &users)

	d := notify.NewDispatcher(notify.Options{
		Notifications: repository.NewNotificationRepository(dbase),
		Users:         repository.NewUserRepository(dbase),
		UserCache:     userCache,
		Redis:         rc,
		DedupeWindow:  dedupe,
		Logger:        logger.Discard(),
	})
	return &fixture{db: dbase, dispatcher: d, alice: users[0], bob: users[1]}
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&db.Notification{}).Count(&n).Error)
	return n
}

func TestNotifyPersistsRecord(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)
	item := uint64(42)

	n, err := f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionComment, &f.alice, &item)
	require.NoError(t, err)
	require.NotNil(t, n)

	var stored db.Notification
	require.NoError(t, f.db.First(&stored, n.ID).Error)
	assert.Equal(t, f.bob.ID, stored.UserID)
	assert.Equal(t, f.alice.ID, stored.OtherUserID)
	assert.Equal(t, "comment", stored.Action)
	require.NotNil(t, stored.Item)
	assert.Equal(t, item, *stored.Item)
	assert.Equal(t, "alice commented on your post.", stored.Message)
}

func TestSelfNotifyWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)

	for _, a := range notify.Actions() {
		n, err := f.dispatcher.Notify(ctx, f.alice.ID, a, &f.alice, nil)
		require.NoError(t, err)
		assert.Nil(t, n)
	}
	assert.Equal(t, int64(0), f.count(t))
}

func TestUnknownActionWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)

	_, err := f.dispatcher.Notify(ctx, f.bob.ID, notify.Action("like_comment"), &f.alice, nil)
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)
	assert.Equal(t, int64(0), f.count(t))
}

func TestDedupeWindow(t *testing.T) {
	ctx := context.Background()
	f := setup(t, time.Minute)
	item := uint64(1)

	n, err := f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionUpVote, &f.alice, &item)
	require.NoError(t, err)
	require.NotNil(t, n)

	// same event again: dropped
	n, err = f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionUpVote, &f.alice, &item)
	require.NoError(t, err)
	assert.Nil(t, n)

	// different item: kept
	other := uint64(2)
	n, err = f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionUpVote, &f.alice, &other)
	require.NoError(t, err)
	assert.NotNil(t, n)

	assert.Equal(t, int64(2), f.count(t))
}

func TestDedupeWindow_FailedInsertCanBeRetried(t *testing.T) {
	ctx := context.Background()
	f := setup(t, time.Minute)
	item := uint64(1)

	failed := false
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_once", func(tx *gorm.DB) {
		if !failed && tx.Statement.Table == "notifications" {
			failed = true
			_ = tx.AddError(errors.New("transient insert failure"))
		}
	}))

	_, err := f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionUpVote, &f.alice, &item)
	require.Error(t, err)
	assert.Zero(t, f.count(t))

	n, err := f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionUpVote, &f.alice, &item)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, int64(1), f.count(t))

	// the successful insert arms the window again
	n, err = f.dispatcher.Notify(ctx, f.bob.ID, notify.ActionUpVote, &f.alice, &item)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestNotifyMentioned(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)

	carol := db.User{Name: "carol", Email: "carol@example.com", PasswordHash: "x", Salt: "s", AuthToken: "t3"}
	testutil.MustCreate(t, f.db, &carol)

	post := db.Post{UserID: f.alice.ID, Text: "hi @bob @ghost @carol, and @alice"}
	testutil.MustCreate(t, f.db, &post)

	out, err := f.dispatcher.NotifyMentioned(ctx, &f.alice, post)
	require.NoError(t, err)

	// ghost does not exist, "carol," keeps its comma, alice is the author
	require.Len(t, out, 1)
	assert.Equal(t, f.bob.ID, out[0].UserID)
	assert.Equal(t, "mention", out[0].Action)
	require.NotNil(t, out[0].Item)
	assert.Equal(t, post.ID, *out[0].Item)

	// second scan goes through the user cache and behaves the same
	out, err = f.dispatcher.NotifyMentioned(ctx, &f.alice, db.Comment{ID: 9, Text: "@bob"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint64(9), *out[0].Item)
}

func TestListPagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		testutil.MustCreate(t, f.db, &db.Notification{
			UserID:      f.bob.ID,
			OtherUserID: f.alice.ID,
			Action:      "follow",
			Message:     string(rune('a' + i)),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	c := pagination.New(pagination.FlagNotifications)
	page, err := f.dispatcher.List(ctx, f.bob.ID, c)
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	assert.True(t, page.HasNext)
	assert.Equal(t, []string{"g", "f", "e", "d", "c"},
		lo.Map(page.Notifications, func(n db.Notification, _ int) string { return n.Message }))

	page, err = f.dispatcher.List(ctx, f.bob.ID, c.Bump())
	require.NoError(t, err)
	assert.False(t, page.HasNext)
	assert.Len(t, page.Notifications, 2)

	page, err = f.dispatcher.List(ctx, f.alice.ID, c)
	require.NoError(t, err)
	assert.Empty(t, page.Notifications)
}
