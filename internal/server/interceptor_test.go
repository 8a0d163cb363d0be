package server

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/socialgraph/internal/account"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/logger"
)

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, token string) (*account.Principal, error) {
	if token != "good" {
		return nil, svcErr.Unauthenticated("invalid token")
	}
	return &account.Principal{User: db.User{ID: 7, Name: "alice"}, SessionID: "s-7"}, nil
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc ":  "abc",
		"BEARER abc":   "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
		"Bearerabcdef": "",
	}
	for header, want := range cases {
		md := metadata.Pairs("authorization", header)
		assert.Equal(t, want, bearerToken(md), header)
	}
}

func TestAuthInterceptor_SetsPrincipal(t *testing.T) {
	intercept := authInterceptor(stubAuth{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.SocialService_ListNotifications_FullMethodName}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer good"))
	_, err := intercept(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		p, ok := account.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, uint64(7), p.User.ID)
		assert.Equal(t, "s-7", account.SessionID(ctx))
		return nil, nil
	})
	require.NoError(t, err)
}

func TestAuthInterceptor_AnonymousSession(t *testing.T) {
	intercept := authInterceptor(stubAuth{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.SocialService_GetFeed_FullMethodName}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-session-id", "anon"))
	called := false
	_, err := intercept(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		called = true
		_, ok := account.FromContext(ctx)
		assert.False(t, ok)
		assert.Equal(t, "anon", account.SessionID(ctx))
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthInterceptor_Rejects(t *testing.T) {
	intercept := authInterceptor(stubAuth{})
	handler := func(context.Context, any) (any, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	info := &grpc.UnaryServerInfo{FullMethod: pb.SocialService_Follow_FullMethodName}
	_, err := intercept(context.Background(), nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer bad"))
	info = &grpc.UnaryServerInfo{FullMethod: pb.SocialService_GetFeed_FullMethodName}
	_, err = intercept(ctx, nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAuthInterceptor_SkipsOtherServices(t *testing.T) {
	intercept := authInterceptor(stubAuth{})
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := intercept(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestLoggingInterceptor_RequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	intercept := loggingInterceptor(base)
	info := &grpc.UnaryServerInfo{FullMethod: pb.SocialService_Search_FullMethodName}

	_, err := intercept(context.Background(), nil, info, func(ctx context.Context, _ any) (any, error) {
		logger.FromContext(ctx, logger.Discard()).Info("inside handler")
		return nil, svcErr.NotFound("nothing")
	})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "inside handler")
	assert.Contains(t, out, "method="+pb.SocialService_Search_FullMethodName)
	assert.Contains(t, out, "request_id=")
	assert.Contains(t, out, "rpc failed")
}
