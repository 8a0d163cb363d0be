package social

import (
	"context"

	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	svcErr "github.com/oggyb/socialgraph/internal/errors"
)

// SendMessage stores an encrypted direct message and notifies the recipient.
func (s *Service) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.SendMessageResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("SendMessage called", "sender", p.User.ID, "recipient", req.RecipientId)

	msg, err := s.messaging.Send(ctx, &p.User, req.RecipientId, req.Text)
	if err != nil {
		s.log(ctx).Error("SendMessage failed", "sender", p.User.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.SendMessageResponse{Id: msg.ID, CreatedAt: ts(msg.CreatedAt)}, nil
}

// ReadMessage returns a decrypted message to its sender or recipient.
func (s *Service) ReadMessage(ctx context.Context, req *pb.ReadMessageRequest) (*pb.Message, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Debug("ReadMessage called", "user", p.User.ID, "message", req.Id)

	msg, err := s.messaging.Read(ctx, &p.User, req.Id)
	if err != nil {
		s.log(ctx).Error("ReadMessage failed", "user", p.User.ID, "message", req.Id, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.Message{
		Id:          msg.ID,
		SenderId:    msg.SenderID,
		RecipientId: msg.RecipientID,
		Text:        msg.Text,
		CreatedAt:   ts(msg.CreatedAt),
	}, nil
}
