// Package messaging stores direct messages encrypted at rest and notifies
// their recipients.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/socialgraph/internal/db"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
	"github.com/oggyb/socialgraph/internal/notify"
	"github.com/oggyb/socialgraph/internal/repository"
)

const maxMessageLength = 4096

// Plain is a decrypted message.
type Plain struct {
	db.Message
	Text string
}

type Service struct {
	messages *repository.MessageRepository
	users    *repository.UserRepository
	notifier *notify.Dispatcher
	secret   []byte
	log      *slog.Logger
}

func NewService(
	messages *repository.MessageRepository,
	users *repository.UserRepository,
	notifier *notify.Dispatcher,
	secret string,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{messages: messages, users: users, notifier: notifier, secret: []byte(secret), log: log}
}

// Send encrypts text, stores it and sends the recipient a "message" notification.
func (s *Service) Send(ctx context.Context, sender *db.User, recipientID uint64, text string) (*db.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, svcErr.InvalidArgument("message text is required")
	}
	if len(text) > maxMessageLength {
		return nil, svcErr.InvalidArgument("message text exceeds %d bytes", maxMessageLength)
	}
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("user %d not found", recipientID)
		}
		return nil, err
	}

	salt, err := randomBytes(16)
	if err != nil {
		return nil, err
	}
	// the key only depends on whole seconds, so the stored timestamp
	// survives databases with second precision
	createdAt := time.Now().UTC().Truncate(time.Second)
	ciphertext, nonce, err := seal(deriveKey(s.secret, createdAt, salt), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encrypt message: %w", err)
	}

	msg := &db.Message{
		SenderID:    sender.ID,
		RecipientID: recipientID,
		Ciphertext:  ciphertext,
		Nonce:       nonce,
		Salt:        salt,
		CreatedAt:   createdAt,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	id := msg.ID
	if _, err := s.notifier.Notify(ctx, recipientID, notify.ActionMessage, sender, &id); err != nil {
		s.log.Error("message notification failed", "message_id", msg.ID, "err", err)
	}
	return msg, nil
}

// Read decrypts a message for its sender or recipient. Anyone else gets
// ErrNotFound.
func (s *Service) Read(ctx context.Context, reader *db.User, id uint64) (*Plain, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.NotFound("message %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if msg.SenderID != reader.ID && msg.RecipientID != reader.ID {
		return nil, svcErr.NotFound("message %d not found", id)
	}

	plaintext, err := open(deriveKey(s.secret, msg.CreatedAt, msg.Salt), msg.Ciphertext, msg.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decrypt message %d: %w", id, err)
	}
	return &Plain{Message: *msg, Text: string(plaintext)}, nil
}
