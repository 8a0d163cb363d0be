package socialv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "social.v1.SocialService"

// Full method names, as seen by interceptors.
const (
	SocialService_Register_FullMethodName          = "/social.v1.SocialService/Register"
	SocialService_Login_FullMethodName             = "/social.v1.SocialService/Login"
	SocialService_RegenerateToken_FullMethodName   = "/social.v1.SocialService/RegenerateToken"
	SocialService_DeleteAccount_FullMethodName     = "/social.v1.SocialService/DeleteAccount"
	SocialService_Follow_FullMethodName            = "/social.v1.SocialService/Follow"
	SocialService_Unfollow_FullMethodName          = "/social.v1.SocialService/Unfollow"
	SocialService_IsFollowing_FullMethodName       = "/social.v1.SocialService/IsFollowing"
	SocialService_ListFollowing_FullMethodName     = "/social.v1.SocialService/ListFollowing"
	SocialService_ListFollowers_FullMethodName     = "/social.v1.SocialService/ListFollowers"
	SocialService_CreatePost_FullMethodName        = "/social.v1.SocialService/CreatePost"
	SocialService_SharePost_FullMethodName         = "/social.v1.SocialService/SharePost"
	SocialService_Comment_FullMethodName           = "/social.v1.SocialService/Comment"
	SocialService_Vote_FullMethodName              = "/social.v1.SocialService/Vote"
	SocialService_SendMessage_FullMethodName       = "/social.v1.SocialService/SendMessage"
	SocialService_ReadMessage_FullMethodName       = "/social.v1.SocialService/ReadMessage"
	SocialService_GetFeed_FullMethodName           = "/social.v1.SocialService/GetFeed"
	SocialService_ListNotifications_FullMethodName = "/social.v1.SocialService/ListNotifications"
	SocialService_Search_FullMethodName            = "/social.v1.SocialService/Search"
)

// SocialServiceServer is the server API for SocialService.
type SocialServiceServer interface {
	Register(context.Context, *RegisterRequest) (*SessionResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	RegenerateToken(context.Context, *emptypb.Empty) (*SessionResponse, error)
	DeleteAccount(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Follow(context.Context, *FollowRequest) (*emptypb.Empty, error)
	Unfollow(context.Context, *FollowRequest) (*emptypb.Empty, error)
	IsFollowing(context.Context, *IsFollowingRequest) (*IsFollowingResponse, error)
	ListFollowing(context.Context, *ListUsersRequest) (*UserPage, error)
	ListFollowers(context.Context, *ListUsersRequest) (*UserPage, error)
	CreatePost(context.Context, *CreatePostRequest) (*Post, error)
	SharePost(context.Context, *SharePostRequest) (*Share, error)
	Comment(context.Context, *CommentRequest) (*Comment, error)
	Vote(context.Context, *VoteRequest) (*VoteResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	ReadMessage(context.Context, *ReadMessageRequest) (*Message, error)
	GetFeed(context.Context, *PageRequest) (*FeedResponse, error)
	ListNotifications(context.Context, *PageRequest) (*NotificationPage, error)
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
}

// unary builds the method descriptor of one request/response RPC.
func unary[Req, Resp any](name string, call func(SocialServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SocialServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SocialServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// SocialService_ServiceDesc is the grpc.ServiceDesc for SocialService.
var SocialService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SocialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", SocialServiceServer.Register),
		unary("Login", SocialServiceServer.Login),
		unary("RegenerateToken", SocialServiceServer.RegenerateToken),
		unary("DeleteAccount", SocialServiceServer.DeleteAccount),
		unary("Follow", SocialServiceServer.Follow),
		unary("Unfollow", SocialServiceServer.Unfollow),
		unary("IsFollowing", SocialServiceServer.IsFollowing),
		unary("ListFollowing", SocialServiceServer.ListFollowing),
		unary("ListFollowers", SocialServiceServer.ListFollowers),
		unary("CreatePost", SocialServiceServer.CreatePost),
		unary("SharePost", SocialServiceServer.SharePost),
		unary("Comment", SocialServiceServer.Comment),
		unary("Vote", SocialServiceServer.Vote),
		unary("SendMessage", SocialServiceServer.SendMessage),
		unary("ReadMessage", SocialServiceServer.ReadMessage),
		unary("GetFeed", SocialServiceServer.GetFeed),
		unary("ListNotifications", SocialServiceServer.ListNotifications),
		unary("Search", SocialServiceServer.Search),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "social/v1/social.proto",
}

func RegisterSocialServiceServer(s grpc.ServiceRegistrar, srv SocialServiceServer) {
	s.RegisterService(&SocialService_ServiceDesc, srv)
}
