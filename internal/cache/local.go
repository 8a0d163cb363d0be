package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"

	"github.com/oggyb/socialgraph/internal/config"
	"github.com/oggyb/socialgraph/internal/db"
)

// UserCache is an in-process cache of users keyed by lowercased name. Mention
// scanning and search hit the same names over and over within a request burst.
//
// Ristretto admits writes asynchronously, so a Set is not guaranteed to be
// visible to the very next Get. Callers always fall back to the database.
type UserCache struct {
	marshal *marshaler.Marshaler
	ttl     time.Duration
}

func NewUserCache(cfg *config.Config) (*UserCache, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.Cache.NumCounters,
		MaxCost:     cfg.Cache.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init local cache: %w", err)
	}

	manager := gocache.New[any](ristrettostore.NewRistretto(client))
	return &UserCache{
		marshal: marshaler.New(manager),
		ttl:     cfg.Cache.UserTTL,
	}, nil
}

func keyForUserName(name string) string {
	return fmt.Sprintf("user-by-name#%s", strings.ToLower(name))
}

// Get returns the cached user or false on a miss.
func (c *UserCache) Get(ctx context.Context, name string) (*db.User, bool) {
	if c == nil {
		return nil, false
	}
	v, err := c.marshal.Get(ctx, keyForUserName(name), new(db.User))
	if err != nil {
		return nil, false
	}
	user, ok := v.(*db.User)
	return user, ok
}

func (c *UserCache) Set(ctx context.Context, user db.User) {
	if c == nil {
		return
	}
	_ = c.marshal.Set(ctx, keyForUserName(user.Name), user,
		store.WithExpiration(c.ttl),
		store.WithCost(1),
	)
}

func (c *UserCache) Invalidate(ctx context.Context, name string) {
	if c == nil {
		return
	}
	_ = c.marshal.Delete(ctx, keyForUserName(name))
}
