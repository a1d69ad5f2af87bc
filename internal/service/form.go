package service

import (
	"context"
	"html"
	"sync"
	"time"

	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storeerr"
)

const formEntity = "form submission"

// NotificationTimeout bounds a single acknowledgement email.
const NotificationTimeout = 30 * time.Second

// Notifier acknowledges a form submission to its sender.
type Notifier interface {
	SendFormReceivedEmail(ctx context.Context, to, name string) error
}

type FormService struct {
	server   *server.Server
	forms    repository.Collection[model.FormSubmission]
	notifier Notifier
	pending  sync.WaitGroup
}

func NewFormService(s *server.Server, forms repository.Collection[model.FormSubmission], notifier Notifier) *FormService {
	return &FormService{server: s, forms: forms, notifier: notifier}
}

// Submit stores the form as pending and sends the acknowledgement in the
// background. The stored document is the durable record: a failed email is
// logged and never fails the request.
func (s *FormService) Submit(ctx context.Context, req *model.SubmitFormRequest) (*model.FormSubmission, error) {
	form := model.FormSubmission{
		Name:      req.Name,
		Email:     req.Email,
		Number:    req.Number,
		Message:   req.Message,
		Subject:   req.Subject,
		Status:    model.FormStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.forms.Set(ctx, "", form)
	if err != nil {
		return nil, storeerr.HandleError(err, formEntity, "Failed to submit form")
	}
	form.ID = id

	s.notify(form)

	return &form, nil
}

func (s *FormService) notify(form model.FormSubmission) {
	if s.notifier == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), NotificationTimeout)
		defer cancel()

		start := time.Now()
		err := s.notifier.SendFormReceivedEmail(ctx, form.Email, html.UnescapeString(form.Name))
		if err != nil {
			s.server.Logger.Error().
				Err(err).
				Str("form_id", form.ID).
				Dur("duration", time.Since(start)).
				Msg("failed to send form notification")

			s.server.LoggerService.RecordEvent("NotificationFailure", map[string]any{
				"form_id":       form.ID,
				"error_message": err.Error(),
			})
			return
		}

		s.server.Logger.Info().
			Str("form_id", form.ID).
			Dur("duration", time.Since(start)).
			Msg("form notification sent")
	}()
}

// Wait blocks until every in-flight notification has finished or ctx ends.
func (s *FormService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List returns every submission, newest first.
func (s *FormService) List(ctx context.Context) ([]model.FormSubmission, error) {
	forms, err := s.forms.ListOrdered(ctx, nil, "createdAt", repository.Desc)
	if err != nil {
		return nil, storeerr.HandleError(err, formEntity, "Failed to fetch form submissions")
	}
	if forms == nil {
		forms = []model.FormSubmission{}
	}
	return forms, nil
}

// UpdateStatus sets status regardless of the current one.
func (s *FormService) UpdateStatus(ctx context.Context, id, status string) error {
	err := s.forms.Update(ctx, id, map[string]any{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		return storeerr.HandleError(err, formEntity, "Failed to update form status")
	}
	return nil
}
