package social

import (
	"context"
	"errors"

	"google.golang.org/protobuf/types/known/emptypb"
	"gorm.io/gorm"

	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/notify"
	"github.com/oggyb/socialgraph/internal/utils/pagination"
)

// Follow makes the caller follow req.UserId and notifies the followed user.
//
// Errors:
//   - InvalidArgument on self-follow.
//   - NotFound when the user does not exist.
//   - AlreadyExists when the caller already follows them.
func (s *Service) Follow(ctx context.Context, req *pb.FollowRequest) (*emptypb.Empty, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("Follow called", "follower", p.User.ID, "followed", req.UserId)

	if req.UserId != p.User.ID {
		if _, err := s.users.GetByID(ctx, req.UserId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, svcErr.Map(svcErr.NotFound("user %d not found", req.UserId))
			}
			return nil, svcErr.Map(err)
		}
	}

	if err := s.graph.Follow(ctx, p.User.ID, req.UserId); err != nil {
		s.log(ctx).Error("Follow failed", "follower", p.User.ID, "followed", req.UserId, "err", err)
		return nil, svcErr.Map(err)
	}

	if _, err := s.notifier.Notify(ctx, req.UserId, notify.ActionFollow, &p.User, nil); err != nil {
		s.log(ctx).Error("follow notification failed", "err", err)
	}
	return &emptypb.Empty{}, nil
}

// Unfollow removes the caller's follow edge to req.UserId.
func (s *Service) Unfollow(ctx context.Context, req *pb.FollowRequest) (*emptypb.Empty, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("Unfollow called", "follower", p.User.ID, "followed", req.UserId)

	if err := s.graph.Unfollow(ctx, p.User.ID, req.UserId); err != nil {
		s.log(ctx).Error("Unfollow failed", "follower", p.User.ID, "followed", req.UserId, "err", err)
		return nil, svcErr.Map(err)
	}
	return &emptypb.Empty{}, nil
}

// IsFollowing reports whether follower_id (default: caller) follows followed_id.
func (s *Service) IsFollowing(ctx context.Context, req *pb.IsFollowingRequest) (*pb.IsFollowingResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	follower := userOrSelf(p, req.FollowerId)

	ok, err := s.graph.IsFollowing(ctx, follower, req.FollowedId)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.IsFollowingResponse{Following: ok}, nil
}

// ListFollowing pages the users user_id (default: caller) follows.
func (s *Service) ListFollowing(ctx context.Context, req *pb.ListUsersRequest) (*pb.UserPage, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	userID := userOrSelf(p, req.UserId)
	s.log(ctx).Debug("ListFollowing called", "user", userID, "direction", req.Direction)

	cur, err := s.advance(ctx, pagination.FlagFollowing, req.Direction)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	users, err := s.graph.FollowedBy(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.UserPage{
		Users:   toUsers(pagination.Window(users, cur)),
		Page:    cur.Page,
		HasNext: cur.HasNext(len(users)),
	}, nil
}

// ListFollowers pages the users following user_id (default: caller).
func (s *Service) ListFollowers(ctx context.Context, req *pb.ListUsersRequest) (*pb.UserPage, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	userID := userOrSelf(p, req.UserId)
	s.log(ctx).Debug("ListFollowers called", "user", userID, "direction", req.Direction)

	cur, err := s.advance(ctx, pagination.FlagFollowers, req.Direction)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	users, err := s.graph.FollowersOf(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.UserPage{
		Users:   toUsers(pagination.Window(users, cur)),
		Page:    cur.Page,
		HasNext: cur.HasNext(len(users)),
	}, nil
}
