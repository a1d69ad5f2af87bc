package service

import (
	"context"
	"time"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storeerr"
	"github.com/pkg/errors"
)

const subscriberEntity = "subscriber"

type SubscriptionService struct {
	server      *server.Server
	subscribers repository.Collection[model.Subscriber]
}

func NewSubscriptionService(s *server.Server, subscribers repository.Collection[model.Subscriber]) *SubscriptionService {
	return &SubscriptionService{server: s, subscribers: subscribers}
}

func alreadySubscribed() error {
	return errs.NewAlreadyExistsError("Email already subscribed", errs.CodeAlreadySubscribed)
}

// Subscribe stores email as its own document key. An existing key is
// rejected; the write itself is a create, so two racing requests for the
// same address still leave exactly one document.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) error {
	_, err := s.subscribers.Get(ctx, email)
	switch {
	case err == nil:
		return alreadySubscribed()
	case !errors.Is(err, repository.ErrNotFound):
		return storeerr.HandleError(err, subscriberEntity, "Failed to subscribe")
	}

	err = s.subscribers.Create(ctx, email, model.Subscriber{
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return alreadySubscribed()
	}
	if err != nil {
		return storeerr.HandleError(err, subscriberEntity, "Failed to subscribe")
	}
	return nil
}

func (s *SubscriptionService) List(ctx context.Context) ([]model.Subscriber, error) {
	subscribers, err := s.subscribers.List(ctx, nil)
	if err != nil {
		return nil, storeerr.HandleError(err, subscriberEntity, "Failed to fetch subscribers")
	}
	if subscribers == nil {
		subscribers = []model.Subscriber{}
	}
	return subscribers, nil
}

// Unsubscribe is idempotent: removing an unknown address succeeds.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	err := s.subscribers.Delete(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storeerr.HandleError(err, subscriberEntity, "Failed to unsubscribe")
	}
	return nil
}
