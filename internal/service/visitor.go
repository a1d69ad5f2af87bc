package service

import (
	"context"

	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storeerr"
	"github.com/pkg/errors"
)

const (
	visitorCountFailed      = "Failed to update visitor count"
	VisitorCountInitialized = "Visitor count initialized"
	VisitorCountUpdated     = "Visitor count updated"
)

type VisitorService struct {
	server   *server.Server
	counters repository.Collection[model.VisitorCounter]
}

func NewVisitorService(s *server.Server, counters repository.Collection[model.VisitorCounter]) *VisitorService {
	return &VisitorService{server: s, counters: counters}
}

// Hit counts one visit and returns the new total.
//
// The counter is bumped with the store's atomic increment. The first visit
// creates the document with count 1; if another request creates it first,
// this one falls back to incrementing.
func (s *VisitorService) Hit(ctx context.Context) (*model.VisitorCountResponse, error) {
	count, err := s.counters.Increment(ctx, model.VisitorCounterID, "count", 1)
	if err == nil {
		return &model.VisitorCountResponse{Message: VisitorCountUpdated, Count: count}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeerr.HandleError(err, "visitor counter", visitorCountFailed)
	}

	err = s.counters.Create(ctx, model.VisitorCounterID, model.VisitorCounter{Count: 1})
	if err == nil {
		return &model.VisitorCountResponse{Message: VisitorCountInitialized, Count: 1}, nil
	}
	if !errors.Is(err, repository.ErrAlreadyExists) {
		return nil, storeerr.HandleError(err, "visitor counter", visitorCountFailed)
	}

	count, err = s.counters.Increment(ctx, model.VisitorCounterID, "count", 1)
	if err != nil {
		return nil, storeerr.HandleError(err, "visitor counter", visitorCountFailed)
	}
	return &model.VisitorCountResponse{Message: VisitorCountUpdated, Count: count}, nil
}
