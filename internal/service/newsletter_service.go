package service

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/repository"
	"github.com/riaz37/portfolio-backend/internal/util"
)

// NewsletterService owns the subscriber list. Actual email delivery is
// handled by an external sender reading this list.
type NewsletterService struct {
	Repo *repository.SubscriberRepository
}

func NewNewsletterService(repo *repository.SubscriberRepository) *NewsletterService {
	return &NewsletterService{Repo: repo}
}

func (s *NewsletterService) Subscribe(email, name string) (*model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", util.ErrInvalidInput)
	}

	sub := &model.Subscriber{Email: email, Name: name}
	if err := s.Repo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *NewsletterService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", util.ErrInvalidInput)
	}
	return s.Repo.DeleteByEmail(email)
}

func (s *NewsletterService) ListSubscribers(page, limit int) ([]model.Subscriber, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(page, limit)
}
