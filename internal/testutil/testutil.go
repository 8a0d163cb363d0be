// Package testutil spins up the isolated SQLite + miniredis backends the
// package tests run against.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/config"
	"github.com/oggyb/socialgraph/internal/db"
)

// NewDB opens a per-test in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

// NewRedis starts a miniredis server and returns a cache bound to it.
func NewRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = ""
	cfg.Redis.DB = 0

	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { rc.Client.Close() })
	return rc, mr
}

// Config returns a config tuned for tests: cheap bcrypt, dedupe disabled.
func Config() *config.Config {
	cfg := config.New()
	cfg.Auth.BcryptCost = 4
	cfg.Auth.JWTSecret = "test-secret-test-secret-test-secret"
	cfg.Auth.MessageSecret = "test-message-secret"
	cfg.Notify.DedupeWindow = 0
	cfg.Session.TTL = time.Hour
	return cfg
}

// MustCreate inserts rows and fails the test on error.
func MustCreate(t *testing.T, gdb *gorm.DB, rows any) {
	t.Helper()
	require.NoError(t, gdb.Create(rows).Error)
}
