// Package account registers users, authenticates them and manages the auth
// token their bearer tokens are bound to.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/socialgraph/internal/activity"
	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/config"
	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/repository"
)

const maxTokenAttempts = 5

// Registration is the sign-up form.
type Registration struct {
	Name                 string `validate:"required,min=3,max=64"`
	Email                string `validate:"required,min=6,max=128,email"`
	Password             string `validate:"required,min=4"`
	PasswordConfirmation string `validate:"eqfield=Password"`
	Theme                string `validate:"omitempty,max=32"`
}

// Session is what a successful sign-in hands back to the client.
type Session struct {
	User      db.User
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// Principal is the authenticated caller behind a bearer token.
type Principal struct {
	User      db.User
	SessionID string
}

type Service struct {
	users      *repository.UserRepository
	userCache  *cache.UserCache
	sessions   *cache.SessionStore
	audit      *activity.Logger
	validate   *validator.Validate
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	log        *slog.Logger
}

type Options struct {
	Users     *repository.UserRepository
	UserCache *cache.UserCache
	Sessions  *cache.SessionStore
	Audit     *activity.Logger
	Config    *config.Config
	Logger    *slog.Logger
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users:      opts.Users,
		userCache:  opts.UserCache,
		sessions:   opts.Sessions,
		audit:      opts.Audit,
		validate:   validator.New(),
		jwtSecret:  []byte(opts.Config.Auth.JWTSecret),
		tokenTTL:   opts.Config.Auth.TokenTTL,
		bcryptCost: opts.Config.Auth.BcryptCost,
		log:        log,
	}
}

// Register validates the form, creates the user and signs them in.
//
// Errors:
//   - ErrValidation for length/format/confirmation failures and taken name or email.
func (s *Service) Register(ctx context.Context, reg Registration, remoteIP string) (*Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))

	if err := s.validate.Struct(reg); err != nil {
		return nil, validationError(err)
	}

	if taken, err := s.users.NameTaken(ctx, reg.Name); err != nil {
		return nil, err
	} else if taken {
		return nil, svcErr.Validation("name has already been taken")
	}
	if taken, err := s.users.EmailTaken(ctx, reg.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, svcErr.Validation("email has already been taken")
	}

	token, err := s.uniqueAuthToken(ctx)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Name:      reg.Name,
		Email:     reg.Email,
		AuthToken: token,
		Theme:     reg.Theme,
	}
	if err := SetPassword(user, reg.Password, s.bcryptCost); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.Validation("name or email has already been taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.userCache.Set(ctx, *user)

	s.log.Info("user registered", "user_id", user.ID, "name", user.Name)
	s.record(ctx, &user.ID, remoteIP, activity.ActionRegister)

	return s.newSession(user)
}

// Login checks the credentials and opens a new session.
func (s *Service) Login(ctx context.Context, email, password, remoteIP string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user.PasswordHash, password, user.Salt) {
		return nil, svcErr.Unauthenticated("invalid email or password")
	}

	s.record(ctx, &user.ID, remoteIP, activity.ActionLogin)
	return s.newSession(user)
}

// Authenticate resolves a bearer token to its user and session. Tokens signed
// before the user's last RegenerateToken are rejected.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*Principal, error) {
	claims, userID, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, svcErr.Unauthenticated("invalid token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.Unauthenticated("unknown user")
	}
	if err != nil {
		return nil, err
	}
	if !tokensEqual(user.AuthToken, claims.AuthToken) {
		return nil, svcErr.Unauthenticated("token has been revoked")
	}
	return &Principal{User: *user, SessionID: claims.ID}, nil
}

// RegenerateToken replaces the user's auth token, revoking every bearer token
// issued so far, and returns a fresh one for the caller's session.
func (s *Service) RegenerateToken(ctx context.Context, p *Principal) (*Session, error) {
	token, err := s.uniqueAuthToken(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateToken(ctx, p.User.ID, token); err != nil {
		return nil, err
	}

	user := p.User
	user.AuthToken = token
	s.userCache.Invalidate(ctx, user.Name)

	signed, expires, err := s.signToken(user.ID, p.SessionID, token)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, SessionID: p.SessionID, Token: signed, ExpiresAt: expires}, nil
}

// DeleteAccount destroys the user and everything they own.
func (s *Service) DeleteAccount(ctx context.Context, p *Principal, remoteIP string) error {
	if err := s.users.DestroyCascade(ctx, p.User.ID); err != nil {
		return err
	}
	s.userCache.Invalidate(ctx, p.User.Name)
	if s.sessions != nil && p.SessionID != "" {
		if err := s.sessions.Clear(ctx, p.SessionID); err != nil {
			s.log.Warn("failed to clear session", "session", p.SessionID, "err", err)
		}
	}

	s.log.Info("user deleted", "user_id", p.User.ID)
	if s.audit != nil {
		id := p.User.ID
		s.audit.Record(ctx, activity.Event{RemoteIP: remoteIP, Action: activity.ActionDeleteAccount, SubjectID: &id})
	}
	return nil
}

func (s *Service) newSession(user *db.User) (*Session, error) {
	sid := uuid.NewString()
	signed, expires, err := s.signToken(user.ID, sid, user.AuthToken)
	if err != nil {
		return nil, err
	}
	return &Session{User: *user, SessionID: sid, Token: signed, ExpiresAt: expires}, nil
}

func (s *Service) uniqueAuthToken(ctx context.Context) (string, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		token, err := newAuthToken()
		if err != nil {
			return "", err
		}
		taken, err := s.users.TokenTaken(ctx, token)
		if err != nil {
			return "", err
		}
		if !taken {
			return token, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique auth token after %d attempts", maxTokenAttempts)
}

func (s *Service) record(ctx context.Context, userID *uint64, remoteIP, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, activity.Event{UserID: userID, RemoteIP: remoteIP, Action: action})
}
