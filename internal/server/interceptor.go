package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/socialgraph/internal/account"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/logger"
)

const (
	headerAuthorization = "authorization"
	headerSessionID     = "x-session-id"
	bearerPrefix        = "bearer "
)

// Authenticator resolves a bearer token to the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*account.Principal, error)
}

// publicMethods can be called without signing in. A valid token is still
// honored so signed-in callers get their own feed.
var publicMethods = map[string]bool{
	pb.SocialService_Register_FullMethodName: true,
	pb.SocialService_Login_FullMethodName:    true,
	pb.SocialService_Search_FullMethodName:   true,
	pb.SocialService_GetFeed_FullMethodName:  true,
}

// methods outside SocialService (health, reflection) skip auth entirely
func socialMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+pb.ServiceName+"/")
}

func authInterceptor(auth Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !socialMethod(info.FullMethod) {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		token := bearerToken(md)

		if token == "" {
			if !publicMethods[info.FullMethod] {
				return nil, svcErr.Map(svcErr.Unauthenticated("missing bearer token"))
			}
			if sid := first(md, headerSessionID); sid != "" {
				ctx = account.WithSessionID(ctx, sid)
			}
			return handler(ctx, req)
		}

		p, err := auth.Authenticate(ctx, token)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		return handler(account.NewContext(ctx, p), req)
	}
}

// loggingInterceptor gives every call a logger tagged with the method and a
// request id, then logs the outcome.
func loggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		reqLog := log.With("method", info.FullMethod, "request_id", uuid.NewString())
		start := time.Now()
		resp, err := handler(logger.NewContext(ctx, reqLog), req)

		attrs := []any{
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		}
		if err != nil {
			reqLog.Warn("rpc failed", append(attrs, "err", err)...)
		} else {
			reqLog.Info("rpc", attrs...)
		}
		return resp, err
	}
}

func bearerToken(md metadata.MD) string {
	v := first(md, headerAuthorization)
	if len(v) <= len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}

func first(md metadata.MD, key string) string {
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
