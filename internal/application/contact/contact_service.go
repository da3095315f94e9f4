package contact

import (
	"context"
	"strings"

	"github.com/maxwelladwale/coltech/internal/domain/notification"
	"go.uber.org/zap"
)

// SubmitRequest is the contact form
type SubmitRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ToMessage converts the form
func (r SubmitRequest) ToMessage() notification.ContactMessage {
	return notification.ContactMessage{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

// Service forwards contact form messages to the sales team
type Service struct {
	notifier notification.NotificationService
	logger   *zap.Logger
}

// NewService creates a contact Service
func NewService(notifier notification.NotificationService, logger *zap.Logger) *Service {
	return &Service{notifier: notifier, logger: logger}
}

// Submit validates and forwards a message
func (s *Service) Submit(ctx context.Context, msg notification.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := s.notifier.SubmitContactMessage(ctx, msg); err != nil {
		s.logger.Error("Failed to forward contact message", zap.String("email", msg.Email), zap.Error(err))
		return err
	}
	s.logger.Info("Contact message received", zap.String("subject", msg.Subject))
	return nil
}
