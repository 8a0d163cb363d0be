package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/socialgraph/internal/account"
	"github.com/oggyb/socialgraph/internal/activity"
	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/logger"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/testutil"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

type fixture struct {
	db       *gorm.DB
	svc      *account.Service
	sessions *cache.SessionStore
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dbase := testutil.NewDB(t)
	rc, _ := testutil.NewRedis(t)
	cfg := testutil.Config()

	userCache, err := cache.NewUserCache(cfg)
	require.NoError(t, err)
	sessions := cache.NewSessionStore(rc, cfg.Session.TTL)

	svc := account.NewService(account.Options{
		Users:     repository.NewUserRepository(dbase),
		UserCache: userCache,
		Sessions:  sessions,
		Audit:     activity.NewLogger(repository.NewActivityRepository(dbase), logger.Discard()),
		Config:    cfg,
		Logger:    logger.Discard(),
	})
	return &fixture{db: dbase, svc: svc, sessions: sessions}
}

func validRegistration(name string) account.Registration {
	return account.Registration{
		Name:                 name,
		Email:                name + "@Example.com",
		Password:             "secret",
		PasswordConfirmation: "secret",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	sess, err := f.svc.Register(ctx, validRegistration("alice"), "10.0.0.1")
	require.NoError(t, err)
	assert.NotZero(t, sess.User.ID)
	assert.NotEmpty(t, sess.Token)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "alice@example.com", sess.User.Email)

	var stored db.User
	require.NoError(t, f.db.First(&stored, sess.User.ID).Error)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NotEmpty(t, stored.Salt)
	assert.NotEmpty(t, stored.AuthToken)

	// email lookup is case-insensitive
	login, err := f.svc.Login(ctx, "ALICE@example.com", "secret", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, login.User.ID)
	assert.NotEqual(t, sess.SessionID, login.SessionID)

	_, err = f.svc.Login(ctx, "alice@example.com", "wrong", "")
	assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)
	_, err = f.svc.Login(ctx, "nobody@example.com", "secret", "")
	assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)

	rows, err := repository.NewActivityRepository(f.db).ListByAction(ctx, activity.ActionLogin)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	cases := map[string]func(r *account.Registration){
		"short name":     func(r *account.Registration) { r.Name = "al" },
		"short email":    func(r *account.Registration) { r.Email = "a@b.c" },
		"bad email":      func(r *account.Registration) { r.Email = "not-an-email" },
		"short password": func(r *account.Registration) { r.Password, r.PasswordConfirmation = "abc", "abc" },
		"mismatch":       func(r *account.Registration) { r.PasswordConfirmation = "other" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			reg := validRegistration("alice")
			mutate(&reg)
			_, err := f.svc.Register(ctx, reg, "")
			assert.ErrorIs(t, err, svcErr.ErrValidation)
		})
	}

	var count int64
	f.db.Model(&db.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegisterUniqueness(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Register(ctx, validRegistration("alice"), "")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, validRegistration("alice"), "")
	assert.ErrorIs(t, err, svcErr.ErrValidation)
	assert.Contains(t, err.Error(), "name")

	reg := validRegistration("alicia")
	reg.Email = "ALICE@example.com"
	_, err = f.svc.Register(ctx, reg, "")
	assert.ErrorIs(t, err, svcErr.ErrValidation)
	assert.Contains(t, err.Error(), "email")
}

func TestRegisterUniqueness_ConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// a competing registration lands between the uniqueness check and the insert
	raced := false
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:race", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "users" {
			return
		}
		raced = true
		other := db.User{Name: "alice", Email: "other@example.com", PasswordHash: "x", Salt: "s", AuthToken: "race"}
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(&other).Error)
	}))

	_, err := f.svc.Register(ctx, validRegistration("alice"), "")
	require.True(t, raced)
	assert.ErrorIs(t, err, svcErr.ErrValidation)
	assert.Equal(t, codes.InvalidArgument, status.Code(svcErr.Map(err)))
}

func TestAuthenticateAndRegenerate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	sess, err := f.svc.Register(ctx, validRegistration("alice"), "")
	require.NoError(t, err)

	p, err := f.svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, p.User.ID)
	assert.Equal(t, sess.SessionID, p.SessionID)

	_, err = f.svc.Authenticate(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)

	fresh, err := f.svc.RegenerateToken(ctx, p)
	require.NoError(t, err)
	assert.NotEqual(t, sess.User.AuthToken, fresh.User.AuthToken)
	assert.Equal(t, sess.SessionID, fresh.SessionID)

	// the old bearer token is revoked, the new one works
	_, err = f.svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)
	p, err = f.svc.Authenticate(ctx, fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, fresh.User.AuthToken, p.User.AuthToken)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	sess, err := f.svc.Register(ctx, validRegistration("alice"), "")
	require.NoError(t, err)
	p, err := f.svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)

	_, err = f.sessions.Advance(ctx, p.SessionID, pagination.FlagFeed, pagination.SignalMore)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAccount(ctx, p, "10.0.0.2"))

	var count int64
	f.db.Model(&db.User{}).Count(&count)
	assert.Equal(t, int64(0), count)

	c, err := f.sessions.Cursor(ctx, p.SessionID, pagination.FlagFeed)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Page)

	_, err = f.svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)

	rows, err := repository.NewActivityRepository(f.db).ListByAction(ctx, activity.ActionDeleteAccount)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, p.User.ID, *rows[0].SubjectID)
}
