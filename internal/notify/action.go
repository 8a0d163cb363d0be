package notify

import (
	"fmt"

	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
)

// Action is the kind of social event a notification reports.
type Action string

const (
	ActionFollow          Action = "follow"
	ActionMessage         Action = "message"
	ActionSharePost       Action = "share_post"
	ActionComment         Action = "comment"
	ActionReply           Action = "reply"
	ActionCommentProposal Action = "comment_proposal"
	ActionCommentModule   Action = "comment_module"
	ActionCommentShare    Action = "comment_share"
	ActionUpVote          Action = "up_vote"
	ActionUpVoteShare     Action = "up_vote_share"
	ActionMention         Action = "mention"
)

// templates renders the message for each action from the actor's name.
// An action missing here is not a valid Action.
var templates = map[Action]func(actor string) string{
	ActionFollow:          func(a string) string { return fmt.Sprintf("%s started following you.", a) },
	ActionMessage:         func(a string) string { return fmt.Sprintf("%s sent you a message.", a) },
	ActionSharePost:       func(a string) string { return fmt.Sprintf("%s shared your post.", a) },
	ActionComment:         func(a string) string { return fmt.Sprintf("%s commented on your post.", a) },
	ActionReply:           func(a string) string { return fmt.Sprintf("%s replied to your comment.", a) },
	ActionCommentProposal: func(a string) string { return fmt.Sprintf("%s commented on your proposal.", a) },
	ActionCommentModule:   func(a string) string { return fmt.Sprintf("%s commented on your module.", a) },
	ActionCommentShare:    func(a string) string { return fmt.Sprintf("%s commented on your share.", a) },
	ActionUpVote:          func(a string) string { return fmt.Sprintf("%s up voted your post.", a) },
	ActionUpVoteShare:     func(a string) string { return fmt.Sprintf("%s up voted your share.", a) },
	ActionMention:         func(a string) string { return fmt.Sprintf("%s mentioned you in a post.", a) },
}

// Actions lists every valid action.
func Actions() []Action {
	return []Action{
		ActionFollow, ActionMessage, ActionSharePost, ActionComment, ActionReply,
		ActionCommentProposal, ActionCommentModule, ActionCommentShare,
		ActionUpVote, ActionUpVoteShare, ActionMention,
	}
}

// ParseAction validates a wire value.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := templates[a]; !ok {
		return "", svcErr.InvalidArgument("unknown notification action %q", s)
	}
	return a, nil
}

// Render returns the notification text for actor, or ErrInvalidArgument for
// an action outside the closed set.
func (a Action) Render(actor string) (string, error) {
	tmpl, ok := templates[a]
	if !ok {
		return "", svcErr.InvalidArgument("unknown notification action %q", string(a))
	}
	return tmpl(actor), nil
}

// CommentAction picks the notification action for a comment on an item kind.
// Replies to a comment always use ActionReply.
func CommentAction(itemKind string, reply bool) (Action, error) {
	if reply {
		return ActionReply, nil
	}
	switch itemKind {
	case db.ItemPost:
		return ActionComment, nil
	case db.ItemShare:
		return ActionCommentShare, nil
	case db.ItemModule:
		return ActionCommentModule, nil
	case db.ItemProposal:
		return ActionCommentProposal, nil
	}
	return "", svcErr.InvalidArgument("cannot comment on %q", itemKind)
}
