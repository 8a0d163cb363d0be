package social

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc/peer"

	"github.com/oggyb/socialgraph/internal/account"
	"github.com/oggyb/socialgraph/internal/activity"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	"github.com/oggyb/socialgraph/internal/app"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/feed"
	"github.com/oggyb/socialgraph/internal/graph"
	"github.com/oggyb/socialgraph/internal/logger"
	"github.com/oggyb/socialgraph/internal/messaging"
	"github.com/oggyb/socialgraph/internal/notify"
	"github.com/oggyb/socialgraph/internal/repository"
	"github.com/oggyb/socialgraph/internal/search"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

// Service implements the SocialService gRPC API.
// It wires the domain packages (graph, feed, notify, search, account,
// messaging) on top of the repository and cache layers.
type Service struct {
	appCtx *app.AppContext

	users     *repository.UserRepository
	posts     *repository.PostRepository
	directory *repository.DirectoryRepository

	accounts  *account.Service
	graph     *graph.Graph
	feed      *feed.Composer
	notifier  *notify.Dispatcher
	search    *search.Aggregator
	messaging *messaging.Service
}

// NewSocialService creates the service with dependencies from AppContext:
//   - DB connection (via repositories)
//   - RedisCache for session cursors and notification dedupe
//   - UserCache for name lookups
func NewSocialService(appCtx *app.AppContext) *Service {
	log := appCtx.Logger
	cfg := appCtx.Config

	users := repository.NewUserRepository(appCtx.DB)
	posts := repository.NewPostRepository(appCtx.DB)
	directory := repository.NewDirectoryRepository(appCtx.DB)
	audit := activity.NewLogger(repository.NewActivityRepository(appCtx.DB), log)

	g := graph.New(repository.NewConnectionRepository(appCtx.DB))
	notifier := notify.NewDispatcher(notify.Options{
		Notifications: repository.NewNotificationRepository(appCtx.DB),
		Users:         users,
		UserCache:     appCtx.UserCache,
		Redis:         appCtx.RedisCache,
		DedupeWindow:  cfg.Notify.DedupeWindow,
		Logger:        log.With("component", "notify"),
	})

	return &Service{
		appCtx:    appCtx,
		users:     users,
		posts:     posts,
		directory: directory,
		accounts: account.NewService(account.Options{
			Users:     users,
			UserCache: appCtx.UserCache,
			Sessions:  appCtx.Sessions,
			Audit:     audit,
			Config:    cfg,
			Logger:    log.With("component", "account"),
		}),
		graph:     g,
		feed:      feed.NewComposer(g, posts),
		notifier:  notifier,
		search:    search.NewAggregator(users, directory, appCtx.Sessions, audit, log.With("component", "search")),
		messaging: messaging.NewService(repository.NewMessageRepository(appCtx.DB), users, notifier, cfg.Auth.MessageSecret, log),
	}
}

// Accounts exposes the account service for the auth interceptor.
func (s *Service) Accounts() *account.Service {
	return s.accounts
}

// log returns the request-scoped logger when the server set one.
func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, s.appCtx.Logger)
}

// principal returns the authenticated caller or an Unauthenticated status.
func principal(ctx context.Context) (*account.Principal, error) {
	p, ok := account.FromContext(ctx)
	if !ok {
		return nil, svcErr.Map(svcErr.Unauthenticated("sign in required"))
	}
	return p, nil
}

// remoteIP is the caller's address as seen by the transport, without port.
func remoteIP(ctx context.Context) string {
	pr, ok := peer.FromContext(ctx)
	if !ok || pr.Addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(pr.Addr.String())
	if err != nil {
		return pr.Addr.String()
	}
	return host
}

func signal(d pb.Direction) (pagination.Signal, error) {
	switch d {
	case pb.DirectionFirst:
		return pagination.SignalNone, nil
	case pb.DirectionMore:
		return pagination.SignalMore, nil
	case pb.DirectionBack:
		return pagination.SignalBack, nil
	}
	return 0, svcErr.InvalidArgument("unknown direction %q", string(d))
}

// advance moves the caller's session cursor for flag. Callers without a
// session always get the first page.
func (s *Service) advance(ctx context.Context, flag string, d pb.Direction) (pagination.Cursor, error) {
	sig, err := signal(d)
	if err != nil {
		return pagination.Cursor{}, err
	}
	sid := account.SessionID(ctx)
	if sid == "" {
		return pagination.New(flag), nil
	}
	return s.appCtx.Sessions.Advance(ctx, sid, flag, sig)
}

// userOrSelf resolves an optional user id, defaulting to the caller.
func userOrSelf(p *account.Principal, id uint64) uint64 {
	if id == 0 {
		return p.User.ID
	}
	return id
}

func viewer(ctx context.Context) *db.User {
	if p, ok := account.FromContext(ctx); ok {
		u := p.User
		return &u
	}
	return nil
}
