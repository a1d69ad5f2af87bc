package handler

import (
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/labstack/echo/v4"
)

type FormHandler struct {
	Handler
	forms *service.FormService
}

func NewFormHandler(s *server.Server, forms *service.FormService) *FormHandler {
	return &FormHandler{Handler: NewHandler(s), forms: forms}
}

func (h *FormHandler) SubmitForm(c echo.Context, req *model.SubmitFormRequest) (*model.MessageResponse, error) {
	if _, err := h.forms.Submit(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Form submitted successfully"}, nil
}

func (h *FormHandler) ListForms(c echo.Context, _ *model.ListFormsRequest) ([]model.FormSubmission, error) {
	return h.forms.List(c.Request().Context())
}

func (h *FormHandler) UpdateFormStatus(c echo.Context, req *model.UpdateFormStatusRequest) (*model.MessageResponse, error) {
	if err := h.forms.UpdateStatus(c.Request().Context(), req.ID, req.Status); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Form status updated successfully"}, nil
}
