package pagination

import (
	"encoding/base64"
	"fmt"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

// PageSize is fixed for every paginated list in the system.
const PageSize = 5

// Well-known page flags, one cursor per list.
const (
	FlagFeed          = "feed_page"
	FlagSearch        = "search_page"
	FlagNotifications = "notifications_page"
	FlagFollowers     = "followers_page"
	FlagFollowing     = "following_page"
)

// Signal is what a request asks the cursor to do before rendering a page.
type Signal int

const (
	// SignalNone is a fresh request: the list starts over at page 0.
	SignalNone Signal = iota
	// SignalMore is an explicit "load more".
	SignalMore
	// SignalBack steps one page back.
	SignalBack
)

// Cursor is the pagination state of one named list within a session.
// Page 0 doubles as "absent"; Page never goes negative.
type Cursor struct {
	Flag string `json:"flag"`
	Page int    `json:"page,omitempty"`
	More bool   `json:"more,omitempty"`
	// Scope binds an encoded token to the listing it was issued for, e.g. a
	// search query. Session-held cursors leave it empty.
	Scope string `json:"scope,omitempty"`
}

func New(flag string) Cursor {
	return Cursor{Flag: flag}
}

// Bump sets the counter to 1 when absent, otherwise increments it.
func (c Cursor) Bump() Cursor {
	c.Page++
	return c
}

// Back decrements a present counter and never goes below absent.
func (c Cursor) Back() Cursor {
	if c.Page > 0 {
		c.Page--
	}
	return c
}

// Reset clears the counter unless "more" was requested, then clears "more".
func (c Cursor) Reset() Cursor {
	if !c.More {
		c.Page = 0
	}
	c.More = false
	return c
}

// Apply runs one request's signal followed by Reset, the way every
// paginated endpoint advances its cursor.
func (c Cursor) Apply(sig Signal) Cursor {
	switch sig {
	case SignalMore:
		c = c.Bump()
		c.More = true
	case SignalBack:
		c = c.Back()
		c.More = true
	}
	return c.Reset()
}

// Offset is the number of items skipped before this page.
func (c Cursor) Offset() int {
	return c.Page * PageSize
}

// HasNext reports whether a list of total items continues past this page.
func (c Cursor) HasNext(total int) bool {
	return c.Offset()+PageSize < total
}

// Paginate reverses items (callers hand over append-ordered sequences) and
// returns the page the cursor points at. Past the end it returns an empty slice.
func Paginate[T any](items []T, c Cursor) []T {
	reversed := slices.Clone(items)
	slices.Reverse(reversed)
	return Window(reversed, c)
}

// Window returns the cursor's page of items that are already in presentation order.
func Window[T any](items []T, c Cursor) []T {
	start := c.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+PageSize, len(items))
	return slices.Clone(items[start:end])
}

// Encode converts a Cursor into an opaque Base64 token for stateless clients.
func Encode(c Cursor) (string, error) {
	b, err := jsoniter.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 token into a Cursor.
// Empty token → fresh cursor for flag (first page).
func Decode(flag, token string) (Cursor, error) {
	if token == "" {
		return New(flag), nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token")
	}

	var c Cursor
	if err := jsoniter.Unmarshal(b, &c); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token")
	}
	if c.Flag != flag || c.Page < 0 {
		return Cursor{}, fmt.Errorf("invalid pagination token")
	}
	return c, nil
}
