package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Sessions   *cache.SessionStore
	UserCache  *cache.UserCache
	Logger     *slog.Logger
}

// New creates a new AppContext. The session store is derived from Redis and
// the configured session TTL.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, userCache *cache.UserCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Sessions:   cache.NewSessionStore(rdb, cfg.Session.TTL),
		UserCache:  userCache,
		Logger:     logger,
	}
}
