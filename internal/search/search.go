// Package search aggregates users, groups, code modules and hashtags matching
// a query into one paginated result list.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/oggyb/socialgraph/internal/activity"
	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

type Kind string

const (
	KindUser    Kind = "user"
	KindGroup   Kind = "group"
	KindModule  Kind = "module"
	KindHashtag Kind = "hashtag"
)

// Entry is one search hit of any kind.
type Entry struct {
	Kind Kind
	ID   uint64
	Name string
}

// Request is one search call.
//
// With a SessionID the query and cursor live in the session store and a
// "more" request pages the query stored by the previous call. Without one
// the cursor travels in Token.
type Request struct {
	Query     string
	Signal    pagination.Signal
	SessionID string
	Token     string
	ActorID   *uint64
	RemoteIP  string
}

type Result struct {
	Query   string
	Entries []Entry
	Page    []Entry
	// NoResults is set when no entity kind matched.
	NoResults string
	Cursor    pagination.Cursor
	HasNext   bool
	// Token carries the cursor for session-less callers; they send it back
	// with the same query and SignalMore to get the next page.
	Token string
}

type Aggregator struct {
	users     *repository.UserRepository
	directory *repository.DirectoryRepository
	sessions  *cache.SessionStore
	audit     *activity.Logger
	log       *slog.Logger
}

func NewAggregator(
	users *repository.UserRepository,
	directory *repository.DirectoryRepository,
	sessions *cache.SessionStore,
	audit *activity.Logger,
	log *slog.Logger,
) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{users: users, directory: directory, sessions: sessions, audit: audit, log: log}
}

// NoResultsMessage is shown when a query matched nothing.
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No results were found for \"%s\".", query)
}

// Search runs req and returns the cursor's page.
//
// Behavior:
//   - "" lists every group by rank, highest first.
//   - Otherwise users, groups and modules named Capitalize(q) or lower(q),
//     then hashtags tagged lower(q), in that kind order.
func (a *Aggregator) Search(ctx context.Context, req Request) (*Result, error) {
	query, cursor, err := a.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	a.log.Debug("search", "query", query, "page", cursor.Page, "session", req.SessionID)

	res := &Result{Query: query, Cursor: cursor}
	if query == "" {
		groups, err := a.directory.GroupsByRank(ctx)
		if err != nil {
			return nil, err
		}
		res.Entries = lo.Map(groups, func(g db.Group, _ int) Entry {
			return Entry{Kind: KindGroup, ID: g.ID, Name: g.Name}
		})
		res.Page = pagination.Window(res.Entries, cursor)
	} else {
		res.Entries, err = a.match(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(res.Entries) == 0 {
			res.NoResults = NoResultsMessage(query)
		}
		res.Page = pagination.Paginate(res.Entries, cursor)
	}
	res.HasNext = cursor.HasNext(len(res.Entries))

	if req.SessionID == "" {
		token := cursor
		token.Scope = query
		if res.Token, err = pagination.Encode(token); err != nil {
			return nil, err
		}
	}

	if a.audit != nil {
		a.audit.Record(ctx, activity.Event{
			UserID:   req.ActorID,
			RemoteIP: req.RemoteIP,
			Action:   activity.ActionSearch,
			Detail:   query,
		})
	}
	return res, nil
}

// resolve picks the effective query and advances the search cursor.
func (a *Aggregator) resolve(ctx context.Context, req Request) (string, pagination.Cursor, error) {
	if req.SessionID == "" {
		c, err := pagination.Decode(pagination.FlagSearch, req.Token)
		if err != nil {
			return "", c, svcErr.InvalidArgument("bad page token: %v", err)
		}
		if req.Token != "" && c.Scope != req.Query {
			return "", pagination.Cursor{}, svcErr.InvalidArgument("page token was issued for another query")
		}
		c.Scope = ""
		return req.Query, c.Apply(req.Signal), nil
	}

	query := req.Query
	if req.Signal != pagination.SignalNone {
		stored, ok, err := a.sessions.Query(ctx, req.SessionID)
		if err != nil {
			return "", pagination.Cursor{}, err
		}
		if ok {
			query = stored
		}
	}
	if err := a.sessions.SetQuery(ctx, req.SessionID, query); err != nil {
		return "", pagination.Cursor{}, err
	}

	c, err := a.sessions.Advance(ctx, req.SessionID, pagination.FlagSearch, req.Signal)
	return query, c, err
}

func (a *Aggregator) match(ctx context.Context, query string) ([]Entry, error) {
	names := lo.Uniq([]string{Capitalize(query), strings.ToLower(query)})

	users, err := a.users.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	groups, err := a.directory.GroupsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	modules, err := a.directory.ModulesByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	hashtags, err := a.directory.HashtagsTagged(ctx, strings.ToLower(query))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users)+len(groups)+len(modules)+len(hashtags))
	entries = append(entries, lo.Map(users, func(u db.User, _ int) Entry {
		return Entry{Kind: KindUser, ID: u.ID, Name: u.Name}
	})...)
	entries = append(entries, lo.Map(groups, func(g db.Group, _ int) Entry {
		return Entry{Kind: KindGroup, ID: g.ID, Name: g.Name}
	})...)
	entries = append(entries, lo.Map(modules, func(m db.CodeModule, _ int) Entry {
		return Entry{Kind: KindModule, ID: m.ID, Name: m.Name}
	})...)
	entries = append(entries, lo.Map(hashtags, func(h db.Hashtag, _ int) Entry {
		return Entry{Kind: KindHashtag, ID: h.ID, Name: h.Name}
	})...)
	return entries, nil
}

// Capitalize upper-cases the first letter and lower-cases the rest:
// "gOPHERS" → "Gophers".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
