package social

import (
	"context"

	"github.com/samber/lo"

	"github.com/oggyb/socialgraph/internal/account"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/search"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

// GetFeed returns one page of the caller's home feed.
//
// Behavior:
//   - Signed-in caller following active users → their posts, newest first.
//   - Anyone else → popular public posts.
//   - Anonymous callers page with an x-session-id header; without one they
//     always get the first page.
func (s *Service) GetFeed(ctx context.Context, req *pb.PageRequest) (*pb.FeedResponse, error) {
	v := viewer(ctx)
	s.log(ctx).Debug("GetFeed called", "signed_in", v != nil, "direction", req.Direction)

	cur, err := s.advance(ctx, pagination.FlagFeed, req.Direction)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	f, err := s.feed.ComputeFeed(ctx, v)
	if err != nil {
		s.log(ctx).Error("GetFeed failed", "err", err)
		return nil, svcErr.Map(err)
	}

	return &pb.FeedResponse{
		Posts:   lo.Map(f.Page(cur), func(p db.Post, _ int) *pb.Post { return toPost(p) }),
		Source:  string(f.Source),
		Page:    cur.Page,
		HasNext: cur.HasNext(len(f.Posts)),
	}, nil
}

// ListNotifications pages the caller's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, req *pb.PageRequest) (*pb.NotificationPage, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("ListNotifications called", "user", p.User.ID, "direction", req.Direction)

	cur, err := s.advance(ctx, pagination.FlagNotifications, req.Direction)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	page, err := s.notifier.List(ctx, p.User.ID, cur)
	if err != nil {
		s.log(ctx).Error("ListNotifications failed", "user", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	return &pb.NotificationPage{
		Notifications: lo.Map(page.Notifications, func(n db.Notification, _ int) *pb.Notification { return toNotification(n) }),
		Total:         page.Total,
		Page:          cur.Page,
		HasNext:       page.HasNext,
	}, nil
}

// Search looks up users, groups, modules and hashtags by name.
// A "more" or "back" request from a session pages that session's last query.
func (s *Service) Search(ctx context.Context, req *pb.SearchRequest) (*pb.SearchResponse, error) {
	sig, err := signal(req.Direction)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	var actor *uint64
	if v := viewer(ctx); v != nil {
		id := v.ID
		actor = &id
	}
	s.log(ctx).Debug("Search called", "query", req.Query, "direction", req.Direction)

	res, err := s.search.Search(ctx, search.Request{
		Query:     req.Query,
		Signal:    sig,
		SessionID: account.SessionID(ctx),
		Token:     req.Token,
		ActorID:   actor,
		RemoteIP:  remoteIP(ctx),
	})
	if err != nil {
		s.log(ctx).Error("Search failed", "query", req.Query, "err", err)
		return nil, svcErr.Map(err)
	}

	return &pb.SearchResponse{
		Query:     res.Query,
		Entries:   lo.Map(res.Page, func(e search.Entry, _ int) *pb.SearchEntry { return toEntry(e) }),
		Total:     len(res.Entries),
		NoResults: res.NoResults,
		Page:      res.Cursor.Page,
		HasNext:   res.HasNext,
		Token:     res.Token,
	}, nil
}
