package notification

import (
	"context"
	"log"
	"strings"

	"handmade-market/internal/domain"
	notificationrepo "handmade-market/internal/repository/notification"
)

// Service stores and delivers per-user in-app notifications.
type Service struct {
	repo   notificationrepo.Repository
	logger *log.Logger
}

func New(repo notificationrepo.Repository, logger *log.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Notify records a notification for the user. Called by the order and
// vendor services on state changes. Delivery is best-effort, so a storage
// failure is logged rather than bubbled up to the triggering operation.
func (s *Service) Notify(ctx context.Context, userID, title, body string) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(title) == "" {
		return
	}
	if _, err := s.repo.Create(ctx, domain.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}); err != nil {
		s.logger.Printf("store notification for user %s: %v", userID, err)
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead flips a single notification to read. Only the owner may do so.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("notification id required")
	}
	return s.repo.MarkRead(ctx, userID, id)
}
