package social

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/oggyb/socialgraph/internal/account"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
)

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.SessionResponse, error) {
	s.log(ctx).Debug("Register called", "name", req.Name)

	sess, err := s.accounts.Register(ctx, account.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Theme:                req.Theme,
	}, remoteIP(ctx))
	if err != nil {
		s.log(ctx).Error("Register failed", "name", req.Name, "err", err)
		return nil, svcErr.Map(err)
	}
	return toSession(sess), nil
}

// Login exchanges email and password for a bearer token bound to a new session.
func (s *Service) Login(ctx context.Context, req *pb.LoginRequest) (*pb.SessionResponse, error) {
	s.log(ctx).Debug("Login called", "email", req.Email)

	sess, err := s.accounts.Login(ctx, req.Email, req.Password, remoteIP(ctx))
	if err != nil {
		s.log(ctx).Error("Login failed", "email", req.Email, "err", err)
		return nil, svcErr.Map(err)
	}
	return toSession(sess), nil
}

// RegenerateToken revokes all of the caller's bearer tokens and issues a new one.
func (s *Service) RegenerateToken(ctx context.Context, _ *emptypb.Empty) (*pb.SessionResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("RegenerateToken called", "user", p.User.ID)

	sess, err := s.accounts.RegenerateToken(ctx, p)
	if err != nil {
		s.log(ctx).Error("RegenerateToken failed", "user", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return toSession(sess), nil
}

// DeleteAccount destroys the caller's account and everything it owns.
func (s *Service) DeleteAccount(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("DeleteAccount called", "user", p.User.ID)

	if err := s.accounts.DeleteAccount(ctx, p, remoteIP(ctx)); err != nil {
		s.log(ctx).Error("DeleteAccount failed", "user", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &emptypb.Empty{}, nil
}
