package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v3"

	"berbagi/internal/config"
	"berbagi/internal/domain"
	"berbagi/internal/repository"
)

// Service is the email sink. It looks up the recipient address and renders
// the notification into the HTML layout.
type Service interface {
	Send(ctx context.Context, userID uuid.UUID, payload domain.DeliveryPayload) error
}

type service struct {
	client       *resend.Client
	userRepo     repository.UserRepository
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config, userRepo repository.UserRepository) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		userRepo:     userRepo,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Berbagi <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
		Headers: map[string]string{"X-Entity-Ref-ID": templateName},
	}

	_, err = s.client.Emails.SendWithContext(ctx, params)
	return err
}

func (s *service) Send(ctx context.Context, userID uuid.UUID, payload domain.DeliveryPayload) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get recipient: %w", err)
	}
	if user == nil || user.Email == "" {
		return domain.ErrNotFound
	}

	data := struct {
		Title string
		Name  string
		Body  string
		Link  string
	}{
		Title: payload.Title,
		Name:  user.DisplayName(),
		Body:  payload.Body,
		Link:  notificationLink(s.config.Domain, payload),
	}
	return s.sendEmail(ctx, user.Email, payload.Title, "notification.html", data)
}

func notificationLink(domainName string, payload domain.DeliveryPayload) string {
	switch {
	case payload.Linked.ClaimID != nil:
		return fmt.Sprintf("https://%s/claims/%s", domainName, payload.Linked.ClaimID)
	case payload.Linked.ResourceID != nil:
		return fmt.Sprintf("https://%s/resources/%s", domainName, payload.Linked.ResourceID)
	case payload.Linked.ConversationID != nil:
		return fmt.Sprintf("https://%s/messages/%s", domainName, payload.Linked.ConversationID)
	case payload.Linked.CommunityID != nil:
		return fmt.Sprintf("https://%s/communities/%s", domainName, payload.Linked.CommunityID)
	}
	return fmt.Sprintf("https://%s/notifications", domainName)
}
