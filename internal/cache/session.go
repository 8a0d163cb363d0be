package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

const (
	fieldMore  = "more"
	fieldQuery = "query"

	maxCursorRetries = 10
)

// ErrCursorContention is returned when a session cursor keeps changing under
// concurrent requests for the same session.
var ErrCursorContention = errors.New("session cursor: too many concurrent updates")

// SessionStore keeps per-session pagination state in one Redis hash:
//
//	session:<sid>  page:<flag> → counter (absent = page 0)
//	               more        → "1" while a "load more" is pending
//	               query       → last search query
//
// The hash expires ttl after its last write.
type SessionStore struct {
	rc  *RedisCache
	ttl time.Duration
}

func NewSessionStore(rc *RedisCache, ttl time.Duration) *SessionStore {
	return &SessionStore{rc: rc, ttl: ttl}
}

func pageField(flag string) string { return "page:" + flag }

// Cursor reads the current cursor for flag without changing it.
func (s *SessionStore) Cursor(ctx context.Context, sessionID, flag string) (pagination.Cursor, error) {
	key := s.rc.KeyForSession(sessionID)
	vals, err := s.rc.Client.HMGet(ctx, key, pageField(flag), fieldMore).Result()
	if err != nil {
		return pagination.Cursor{}, err
	}
	return cursorFrom(flag, vals)
}

// Advance applies one request signal to the flag's cursor and stores the result.
func (s *SessionStore) Advance(ctx context.Context, sessionID, flag string, sig pagination.Signal) (pagination.Cursor, error) {
	return s.Update(ctx, sessionID, flag, func(c pagination.Cursor) pagination.Cursor {
		return c.Apply(sig)
	})
}

// Update runs a read-modify-write of the flag's cursor as an optimistic
// WATCH/MULTI transaction, retrying when another request touched the session.
func (s *SessionStore) Update(
	ctx context.Context,
	sessionID, flag string,
	fn func(pagination.Cursor) pagination.Cursor,
) (pagination.Cursor, error) {
	key := s.rc.KeyForSession(sessionID)

	var out pagination.Cursor
	txf := func(tx *redis.Tx) error {
		vals, err := tx.HMGet(ctx, key, pageField(flag), fieldMore).Result()
		if err != nil {
			return err
		}
		cur, err := cursorFrom(flag, vals)
		if err != nil {
			return err
		}
		out = fn(cur)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if out.Page > 0 {
				pipe.HSet(ctx, key, pageField(flag), out.Page)
			} else {
				pipe.HDel(ctx, key, pageField(flag))
			}
			if out.More {
				pipe.HSet(ctx, key, fieldMore, "1")
			} else {
				pipe.HDel(ctx, key, fieldMore)
			}
			pipe.Expire(ctx, key, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxCursorRetries; i++ {
		err := s.rc.Client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return pagination.Cursor{}, err
		}
		return out, nil
	}
	return pagination.Cursor{}, ErrCursorContention
}

// SetQuery remembers the session's search query so "load more" pages the same results.
func (s *SessionStore) SetQuery(ctx context.Context, sessionID, query string) error {
	key := s.rc.KeyForSession(sessionID)
	_, err := s.rc.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldQuery, query)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

// Query returns the stored search query; ok is false when none was stored.
// The empty string is a valid stored query.
func (s *SessionStore) Query(ctx context.Context, sessionID string) (query string, ok bool, err error) {
	query, err = s.rc.Client.HGet(ctx, s.rc.KeyForSession(sessionID), fieldQuery).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return query, true, nil
}

// Clear drops all state of a session, e.g. on logout or account deletion.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.rc.Del(ctx, s.rc.KeyForSession(sessionID))
}

func cursorFrom(flag string, vals []interface{}) (pagination.Cursor, error) {
	c := pagination.New(flag)
	if len(vals) != 2 {
		return c, fmt.Errorf("session cursor: unexpected reply length %d", len(vals))
	}
	if raw, ok := vals[0].(string); ok {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return c, fmt.Errorf("session cursor: corrupt page counter %q", raw)
		}
		c.Page = page
	}
	if raw, ok := vals[1].(string); ok {
		c.More = raw == "1"
	}
	return c, nil
}
