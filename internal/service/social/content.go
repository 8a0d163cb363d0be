package social

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/notify"
)

const maxTextLength = 10000

func checkText(text string, required bool) error {
	if required && strings.TrimSpace(text) == "" {
		return svcErr.InvalidArgument("text is required")
	}
	if len(text) > maxTextLength {
		return svcErr.InvalidArgument("text exceeds %d bytes", maxTextLength)
	}
	return nil
}

// notFound turns a missing row into a NotFound naming the item.
func notFound(err error, kind string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound("%s %d not found", kind, id)
	}
	return err
}

// owner returns the author of a commentable item.
func (s *Service) owner(ctx context.Context, kind string, id uint64) (uint64, error) {
	switch kind {
	case db.ItemPost:
		p, err := s.posts.GetByID(ctx, id)
		if err != nil {
			return 0, notFound(err, kind, id)
		}
		return p.UserID, nil
	case db.ItemShare:
		sh, err := s.posts.GetShare(ctx, id)
		if err != nil {
			return 0, notFound(err, kind, id)
		}
		return sh.UserID, nil
	case db.ItemModule:
		m, err := s.directory.GetModule(ctx, id)
		if err != nil {
			return 0, notFound(err, kind, id)
		}
		return m.UserID, nil
	case db.ItemProposal:
		pr, err := s.directory.GetProposal(ctx, id)
		if err != nil {
			return 0, notFound(err, kind, id)
		}
		return pr.UserID, nil
	}
	return 0, svcErr.InvalidArgument("unknown item kind %q", kind)
}

// mention notifies users @mentioned in item. Failures are logged only.
func (s *Service) mention(ctx context.Context, actor *db.User, item notify.Mentionable) {
	if _, err := s.notifier.NotifyMentioned(ctx, actor, item); err != nil {
		s.log(ctx).Error("mention notifications failed", "actor", actor.ID, "err", err)
	}
}

// CreatePost publishes a post and notifies the users it mentions.
func (s *Service) CreatePost(ctx context.Context, req *pb.CreatePostRequest) (*pb.Post, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("CreatePost called", "user", p.User.ID, "public", req.PubliclyShared)

	if err := checkText(req.Text, true); err != nil {
		return nil, svcErr.Map(err)
	}
	post := db.Post{UserID: p.User.ID, Text: req.Text, PubliclyShared: req.PubliclyShared}
	if err := s.posts.Create(ctx, &post); err != nil {
		s.log(ctx).Error("CreatePost failed", "user", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	s.mention(ctx, &p.User, post)
	return toPost(post), nil
}

// SharePost re-publishes a post under the caller and notifies its author.
func (s *Service) SharePost(ctx context.Context, req *pb.SharePostRequest) (*pb.Share, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("SharePost called", "user", p.User.ID, "post", req.PostId)

	if err := checkText(req.Text, false); err != nil {
		return nil, svcErr.Map(err)
	}
	post, err := s.posts.GetByID(ctx, req.PostId)
	if err != nil {
		return nil, svcErr.Map(notFound(err, db.ItemPost, req.PostId))
	}

	share := db.Share{UserID: p.User.ID, PostID: post.ID, Text: req.Text}
	if err := s.posts.CreateShare(ctx, &share); err != nil {
		s.log(ctx).Error("SharePost failed", "user", p.User.ID, "post", req.PostId, "err", err)
		return nil, svcErr.Map(err)
	}

	id := share.ID
	if _, err := s.notifier.Notify(ctx, post.UserID, notify.ActionSharePost, &p.User, &id); err != nil {
		s.log(ctx).Error("share notification failed", "err", err)
	}
	s.mention(ctx, &p.User, share)
	return toShare(share), nil
}

// Comment comments on an item, or replies to a comment when parent_id is set.
//
// Behavior:
//   - A top-level comment notifies the item's author (comment, comment_share,
//     comment_module or comment_proposal by item kind).
//   - A reply notifies the parent comment's author instead (reply).
//   - Users @mentioned in the text are notified.
func (s *Service) Comment(ctx context.Context, req *pb.CommentRequest) (*pb.Comment, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("Comment called", "user", p.User.ID, "kind", req.ItemKind, "item", req.ItemId)

	if err := checkText(req.Text, true); err != nil {
		return nil, svcErr.Map(err)
	}
	action, err := notify.CommentAction(req.ItemKind, req.ParentId != nil)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	recipient, err := s.owner(ctx, req.ItemKind, req.ItemId)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.ParentId != nil {
		parent, err := s.posts.GetComment(ctx, *req.ParentId)
		if err != nil {
			return nil, svcErr.Map(notFound(err, "comment", *req.ParentId))
		}
		if parent.ItemKind != req.ItemKind || parent.ItemID != req.ItemId {
			return nil, svcErr.Map(svcErr.InvalidArgument("comment %d belongs to another item", parent.ID))
		}
		recipient = parent.CommenterID
	}

	comment := db.Comment{
		CommenterID: p.User.ID,
		ItemKind:    req.ItemKind,
		ItemID:      req.ItemId,
		ParentID:    req.ParentId,
		Text:        req.Text,
	}
	if err := s.posts.CreateComment(ctx, &comment); err != nil {
		s.log(ctx).Error("Comment failed", "user", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	item := req.ItemId
	if _, err := s.notifier.Notify(ctx, recipient, action, &p.User, &item); err != nil {
		s.log(ctx).Error("comment notification failed", "err", err)
	}
	s.mention(ctx, &p.User, comment)
	return toComment(comment), nil
}

// Vote records the caller's up or down vote on a post or share and returns the
// new net score. Up votes notify the item's author.
func (s *Service) Vote(ctx context.Context, req *pb.VoteRequest) (*pb.VoteResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("Vote called", "user", p.User.ID, "kind", req.ItemKind, "item", req.ItemId, "up", req.Up)

	var action notify.Action
	switch req.ItemKind {
	case db.ItemPost:
		action = notify.ActionUpVote
	case db.ItemShare:
		action = notify.ActionUpVoteShare
	default:
		return nil, svcErr.Map(svcErr.InvalidArgument("cannot vote on %q", req.ItemKind))
	}

	author, err := s.owner(ctx, req.ItemKind, req.ItemId)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	score, err := s.posts.Vote(ctx, p.User.ID, req.ItemKind, req.ItemId, req.Up)
	if err != nil {
		s.log(ctx).Error("Vote failed", "user", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	if req.Up {
		item := req.ItemId
		if _, err := s.notifier.Notify(ctx, author, action, &p.User, &item); err != nil {
			s.log(ctx).Error("vote notification failed", "err", err)
		}
	}
	return &pb.VoteResponse{Score: score}, nil
}
