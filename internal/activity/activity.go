// Package activity records the audit trail of user-visible actions.
package activity

import (
	"context"
	"log/slog"

	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/repository"
)

// Well-known actions.
const (
	ActionSearch        = "search"
	ActionLogin         = "login"
	ActionRegister      = "register"
	ActionDeleteAccount = "delete_account"
)

// Event describes one action. UserID is nil for anonymous visitors.
type Event struct {
	UserID    *uint64
	RemoteIP  string
	Action    string
	SubjectID *uint64
	Detail    string
}

type Logger struct {
	repo *repository.ActivityRepository
	log  *slog.Logger
}

func NewLogger(repo *repository.ActivityRepository, log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{repo: repo, log: log}
}

// Record writes the event. Audit failures are logged and never fail the
// request that triggered them.
func (l *Logger) Record(ctx context.Context, e Event) {
	a := &db.Activity{
		UserID:    e.UserID,
		RemoteIP:  e.RemoteIP,
		Action:    e.Action,
		SubjectID: e.SubjectID,
		Detail:    truncate(e.Detail, 255),
	}
	if err := l.repo.Create(ctx, a); err != nil {
		l.log.Error("failed to record activity", "action", e.Action, "err", err)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
