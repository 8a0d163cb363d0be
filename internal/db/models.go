package db

import (
	"time"
)

// User table
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"uniqueIndex;size:64;not null"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Salt         string    `gorm:"size:64;not null"`
	AuthToken    string    `gorm:"uniqueIndex;size:64;not null"`
	Theme        string    `gorm:"size:32"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Connection is a directed follow edge: FollowerID follows FollowedID.
//
// Composite PK: (FollowerID, FollowedID)
//   - One row per ordered pair.
//
// Indexes:
//   - idx_followed_follower(followed_id, follower_id)
//     Serves "who follows X" without scanning the PK.
type Connection struct {
	FollowerID uint64    `gorm:"primaryKey;index:idx_followed_follower,priority:2"`
	FollowedID uint64    `gorm:"primaryKey;index:idx_followed_follower,priority:1"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Post is authored by one user. Score is the net vote count (ups minus downs)
// and is rewritten every time a vote on the post changes.
type Post struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	UserID         uint64    `gorm:"not null;index"`
	Text           string    `gorm:"type:text"`
	Score          int       `gorm:"not null;default:0;index:idx_public_score,priority:2"`
	PubliclyShared bool      `gorm:"not null;default:false;index:idx_public_score,priority:1"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

// Share re-publishes a post under another user.
type Share struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	PostID    uint64    `gorm:"not null;index"`
	Text      string    `gorm:"type:text"`
	Score     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Item kinds comments and votes can attach to.
const (
	ItemPost     = "post"
	ItemShare    = "share"
	ItemModule   = "module"
	ItemProposal = "proposal"
)

// Comment on an item. ParentID is set for replies.
type Comment struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	CommenterID uint64    `gorm:"not null;index"`
	ItemKind    string    `gorm:"size:16;not null;index:idx_comment_item,priority:1"`
	ItemID      uint64    `gorm:"not null;index:idx_comment_item,priority:2"`
	ParentID    *uint64   `gorm:"index"`
	Text        string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Vote is one user's up/down vote on a post or share; unique per (user, item).
type Vote struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_vote_user_item,priority:1"`
	ItemKind  string    `gorm:"size:16;not null;uniqueIndex:idx_vote_user_item,priority:2;index:idx_vote_item,priority:1"`
	ItemID    uint64    `gorm:"not null;uniqueIndex:idx_vote_user_item,priority:3;index:idx_vote_item,priority:2"`
	Up        bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Notification belongs to its recipient (UserID). Never updated after insert.
type Notification struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;index:idx_recipient_created,priority:1"`
	OtherUserID uint64 `gorm:"not null"`
	Action      string `gorm:"size:32;not null"`
	Item        *uint64
	Message     string    `gorm:"size:255;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_recipient_created,priority:2"`
}

// Message is stored encrypted; Salt and CreatedAt feed the key derivation.
type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	SenderID    uint64    `gorm:"not null;index"`
	RecipientID uint64    `gorm:"not null;index"`
	Ciphertext  []byte    `gorm:"not null"`
	Nonce       []byte    `gorm:"not null"`
	Salt        []byte    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Group struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:128;not null;index"`
	Rank int    `gorm:"not null;default:0"`
}

// CodeModule is a published code module; UserID is its author.
type CodeModule struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"not null;default:0;index"`
	Name   string `gorm:"size:128;not null;index"`
	Rank   int    `gorm:"not null;default:0"`
}

// Proposal is a change proposed by UserID to a code module.
type Proposal struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;index"`
	CodeModuleID uint64    `gorm:"not null;index"`
	Text         string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type Hashtag struct {
	ID     uint64       `gorm:"primaryKey;autoIncrement"`
	UserID uint64       `gorm:"not null;index"`
	Name   string       `gorm:"size:128;not null"`
	Tags   []HashtagTag `gorm:"foreignKey:HashtagID"`
}

// HashtagTag is one lowercased tag attached to a hashtag.
type HashtagTag struct {
	HashtagID uint64 `gorm:"primaryKey"`
	Tag       string `gorm:"primaryKey;size:64;index"`
}

// Activity is the audit trail of user-visible actions (search, login...).
// UserID is nil for anonymous visitors.
type Activity struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UserID    *uint64 `gorm:"index"`
	RemoteIP  string  `gorm:"size:64"`
	Action    string  `gorm:"size:32;not null"`
	SubjectID *uint64
	Detail    string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Models lists every table for AutoMigrate, in dependency order.
func Models() []any {
	return []any{
		&User{},
		&Connection{},
		&Post{},
		&Share{},
		&Comment{},
		&Vote{},
		&Notification{},
		&Message{},
		&Group{},
		&CodeModule{},
		&Proposal{},
		&Hashtag{},
		&HashtagTag{},
		&Activity{},
	}
}

// MentionItem exposes the text users can be @mentioned in.
func (p Post) MentionItem() (uint64, string) { return p.ID, p.Text }

func (s Share) MentionItem() (uint64, string) { return s.ID, s.Text }

func (c Comment) MentionItem() (uint64, string) { return c.ID, c.Text }
