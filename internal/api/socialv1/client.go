package socialv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// SocialServiceClient is the client API for SocialService. Every call is
// sent with the JSON codec.
type SocialServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	RegenerateToken(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*SessionResponse, error)
	DeleteAccount(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Follow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Unfollow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	IsFollowing(ctx context.Context, in *IsFollowingRequest, opts ...grpc.CallOption) (*IsFollowingResponse, error)
	ListFollowing(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*UserPage, error)
	ListFollowers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*UserPage, error)
	CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*Post, error)
	SharePost(ctx context.Context, in *SharePostRequest, opts ...grpc.CallOption) (*Share, error)
	Comment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*Comment, error)
	Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	ReadMessage(ctx context.Context, in *ReadMessageRequest, opts ...grpc.CallOption) (*Message, error)
	GetFeed(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*FeedResponse, error)
	ListNotifications(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*NotificationPage, error)
	Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error)
}

type socialServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSocialServiceClient(cc grpc.ClientConnInterface) SocialServiceClient {
	return &socialServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, SocialService_Register_FullMethodName, in, opts)
}

func (c *socialServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, SocialService_Login_FullMethodName, in, opts)
}

func (c *socialServiceClient) RegenerateToken(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, SocialService_RegenerateToken_FullMethodName, in, opts)
}

func (c *socialServiceClient) DeleteAccount(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, SocialService_DeleteAccount_FullMethodName, in, opts)
}

func (c *socialServiceClient) Follow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, SocialService_Follow_FullMethodName, in, opts)
}

func (c *socialServiceClient) Unfollow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, SocialService_Unfollow_FullMethodName, in, opts)
}

func (c *socialServiceClient) IsFollowing(ctx context.Context, in *IsFollowingRequest, opts ...grpc.CallOption) (*IsFollowingResponse, error) {
	return invoke[IsFollowingResponse](ctx, c.cc, SocialService_IsFollowing_FullMethodName, in, opts)
}

func (c *socialServiceClient) ListFollowing(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*UserPage, error) {
	return invoke[UserPage](ctx, c.cc, SocialService_ListFollowing_FullMethodName, in, opts)
}

func (c *socialServiceClient) ListFollowers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*UserPage, error) {
	return invoke[UserPage](ctx, c.cc, SocialService_ListFollowers_FullMethodName, in, opts)
}

func (c *socialServiceClient) CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*Post, error) {
	return invoke[Post](ctx, c.cc, SocialService_CreatePost_FullMethodName, in, opts)
}

func (c *socialServiceClient) SharePost(ctx context.Context, in *SharePostRequest, opts ...grpc.CallOption) (*Share, error) {
	return invoke[Share](ctx, c.cc, SocialService_SharePost_FullMethodName, in, opts)
}

func (c *socialServiceClient) Comment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*Comment, error) {
	return invoke[Comment](ctx, c.cc, SocialService_Comment_FullMethodName, in, opts)
}

func (c *socialServiceClient) Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[VoteResponse](ctx, c.cc, SocialService_Vote_FullMethodName, in, opts)
}

func (c *socialServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	return invoke[SendMessageResponse](ctx, c.cc, SocialService_SendMessage_FullMethodName, in, opts)
}

func (c *socialServiceClient) ReadMessage(ctx context.Context, in *ReadMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, SocialService_ReadMessage_FullMethodName, in, opts)
}

func (c *socialServiceClient) GetFeed(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*FeedResponse, error) {
	return invoke[FeedResponse](ctx, c.cc, SocialService_GetFeed_FullMethodName, in, opts)
}

func (c *socialServiceClient) ListNotifications(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*NotificationPage, error) {
	return invoke[NotificationPage](ctx, c.cc, SocialService_ListNotifications_FullMethodName, in, opts)
}

func (c *socialServiceClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	return invoke[SearchResponse](ctx, c.cc, SocialService_Search_FullMethodName, in, opts)
}
