// Package socialv1 defines the social.v1.SocialService gRPC API: its
// messages, service descriptor and client. Messages travel as JSON.
package socialv1

import "google.golang.org/protobuf/types/known/timestamppb"

// Direction moves a paginated list. The empty value starts over at page 0.
type Direction string

const (
	DirectionFirst Direction = ""
	DirectionMore  Direction = "more"
	DirectionBack  Direction = "back"
)

type User struct {
	Id    uint64 `json:"id"`
	Name  string `json:"name"`
	Theme string `json:"theme,omitempty"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Theme                string `json:"theme,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	User      *User                  `json:"user"`
	SessionId string                 `json:"session_id"`
	Token     string                 `json:"token"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at"`
}

type FollowRequest struct {
	UserId uint64 `json:"user_id"`
}

type IsFollowingRequest struct {
	FollowerId uint64 `json:"follower_id"`
	FollowedId uint64 `json:"followed_id"`
}

type IsFollowingResponse struct {
	Following bool `json:"following"`
}

type ListUsersRequest struct {
	// UserId defaults to the caller.
	UserId    uint64    `json:"user_id,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

type UserPage struct {
	Users   []*User `json:"users"`
	Page    int     `json:"page"`
	HasNext bool    `json:"has_next"`
}

type Post struct {
	Id             uint64                 `json:"id"`
	UserId         uint64                 `json:"user_id"`
	Text           string                 `json:"text"`
	Score          int                    `json:"score"`
	PubliclyShared bool                   `json:"publicly_shared"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at"`
}

type CreatePostRequest struct {
	Text           string `json:"text"`
	PubliclyShared bool   `json:"publicly_shared"`
}

type SharePostRequest struct {
	PostId uint64 `json:"post_id"`
	Text   string `json:"text,omitempty"`
}

type Share struct {
	Id        uint64                 `json:"id"`
	UserId    uint64                 `json:"user_id"`
	PostId    uint64                 `json:"post_id"`
	Text      string                 `json:"text,omitempty"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type CommentRequest struct {
	// ItemKind is one of post, share, module, proposal.
	ItemKind string  `json:"item_kind"`
	ItemId   uint64  `json:"item_id"`
	ParentId *uint64 `json:"parent_id,omitempty"`
	Text     string  `json:"text"`
}

type Comment struct {
	Id        uint64                 `json:"id"`
	UserId    uint64                 `json:"user_id"`
	ItemKind  string                 `json:"item_kind"`
	ItemId    uint64                 `json:"item_id"`
	ParentId  *uint64                `json:"parent_id,omitempty"`
	Text      string                 `json:"text"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type VoteRequest struct {
	// ItemKind is post or share.
	ItemKind string `json:"item_kind"`
	ItemId   uint64 `json:"item_id"`
	Up       bool   `json:"up"`
}

type VoteResponse struct {
	Score int `json:"score"`
}

type SendMessageRequest struct {
	RecipientId uint64 `json:"recipient_id"`
	Text        string `json:"text"`
}

type SendMessageResponse struct {
	Id        uint64                 `json:"id"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type ReadMessageRequest struct {
	Id uint64 `json:"id"`
}

type Message struct {
	Id          uint64                 `json:"id"`
	SenderId    uint64                 `json:"sender_id"`
	RecipientId uint64                 `json:"recipient_id"`
	Text        string                 `json:"text"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at"`
}

type PageRequest struct {
	Direction Direction `json:"direction,omitempty"`
}

type FeedResponse struct {
	Posts []*Post `json:"posts"`
	// Source is "following" or "popular".
	Source  string `json:"source"`
	Page    int    `json:"page"`
	HasNext bool   `json:"has_next"`
}

type Notification struct {
	Id        uint64                 `json:"id"`
	ActorId   uint64                 `json:"actor_id"`
	Action    string                 `json:"action"`
	Item      *uint64                `json:"item,omitempty"`
	Message   string                 `json:"message"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	Total         int64           `json:"total"`
	Page          int             `json:"page"`
	HasNext       bool            `json:"has_next"`
}

type SearchRequest struct {
	Query     string    `json:"query"`
	Direction Direction `json:"direction,omitempty"`
	// Token is the cursor of session-less callers.
	Token string `json:"token,omitempty"`
}

type SearchEntry struct {
	// Kind is user, group, module or hashtag.
	Kind string `json:"kind"`
	Id   uint64 `json:"id"`
	Name string `json:"name"`
}

type SearchResponse struct {
	Query     string         `json:"query"`
	Entries   []*SearchEntry `json:"entries"`
	Total     int            `json:"total"`
	NoResults string         `json:"no_results,omitempty"`
	Page      int            `json:"page"`
	HasNext   bool           `json:"has_next"`
	Token     string         `json:"token,omitempty"`
}
