package social

import (
	"time"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/oggyb/socialgraph/internal/account"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/search"
)

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func toUser(u db.User) *pb.User {
	return &pb.User{Id: u.ID, Name: u.Name, Theme: u.Theme}
}

func toUsers(users []db.User) []*pb.User {
	return lo.Map(users, func(u db.User, _ int) *pb.User { return toUser(u) })
}

func toSession(s *account.Session) *pb.SessionResponse {
	return &pb.SessionResponse{
		User:      toUser(s.User),
		SessionId: s.SessionID,
		Token:     s.Token,
		ExpiresAt: ts(s.ExpiresAt),
	}
}

func toPost(p db.Post) *pb.Post {
	return &pb.Post{
		Id:             p.ID,
		UserId:         p.UserID,
		Text:           p.Text,
		Score:          p.Score,
		PubliclyShared: p.PubliclyShared,
		CreatedAt:      ts(p.CreatedAt),
	}
}

func toShare(s db.Share) *pb.Share {
	return &pb.Share{Id: s.ID, UserId: s.UserID, PostId: s.PostID, Text: s.Text, CreatedAt: ts(s.CreatedAt)}
}

func toComment(c db.Comment) *pb.Comment {
	return &pb.Comment{
		Id:        c.ID,
		UserId:    c.CommenterID,
		ItemKind:  c.ItemKind,
		ItemId:    c.ItemID,
		ParentId:  c.ParentID,
		Text:      c.Text,
		CreatedAt: ts(c.CreatedAt),
	}
}

func toNotification(n db.Notification) *pb.Notification {
	return &pb.Notification{
		Id:        n.ID,
		ActorId:   n.OtherUserID,
		Action:    n.Action,
		Item:      n.Item,
		Message:   n.Message,
		CreatedAt: ts(n.CreatedAt),
	}
}

func toEntry(e search.Entry) *pb.SearchEntry {
	return &pb.SearchEntry{Kind: string(e.Kind), Id: e.ID, Name: e.Name}
}
