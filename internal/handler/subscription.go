package handler

import (
	"net/url"
	"strings"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	Handler
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(s *server.Server, subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Handler: NewHandler(s), subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Subscribe(c echo.Context, req *model.SubscribeRequest) (*model.MessageResponse, error) {
	if err := h.subscriptions.Subscribe(c.Request().Context(), req.Email); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Thank you for subscribing"}, nil
}

func (h *SubscriptionHandler) ListSubscribers(c echo.Context, _ *model.ListSubscribersRequest) ([]model.Subscriber, error) {
	return h.subscriptions.List(c.Request().Context())
}

// Unsubscribe normalizes the address the same way Subscribe stored it.
func (h *SubscriptionHandler) Unsubscribe(c echo.Context, req *model.UnsubscribeRequest) (*model.MessageResponse, error) {
	email, err := url.PathUnescape(req.Email)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid email", true, nil, nil, nil)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := h.subscriptions.Unsubscribe(c.Request().Context(), email); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Unsubscribed successfully"}, nil
}
