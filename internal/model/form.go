package model

import "github.com/deppfellow/portfolio-api/internal/validation"

// SubmitFormRequest is the body of POST /forms.
type SubmitFormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Number  string `json:"number"`
	Message string `json:"message"`
	Subject string `json:"subject"`
}

func (*SubmitFormRequest) Rules() validation.Rules {
	return validation.Rules{
		{
			Field:      "name",
			Checks:     []validation.Check{validation.NotEmpty("Name is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim, validation.Escape},
		},
		{
			Field:      "email",
			Checks:     []validation.Check{validation.IsEmail("Invalid email")},
			Sanitizers: []validation.Sanitizer{validation.NormalizeEmail},
		},
		{
			Field:      "number",
			Checks:     []validation.Check{validation.NotEmpty("Number is required")},
			Sanitizers: []validation.Sanitizer{validation.ToString},
		},
		{
			Field:      "message",
			Checks:     []validation.Check{validation.NotEmpty("Message is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim},
		},
		{
			Field:      "subject",
			Checks:     []validation.Check{validation.NotEmpty("Subject is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim},
		},
	}
}

// UpdateFormStatusRequest is the body of PATCH /forms/:id/status.
type UpdateFormStatusRequest struct {
	ID     string `param:"id" json:"-"`
	Status string `json:"status"`
}

func (*UpdateFormStatusRequest) Rules() validation.Rules {
	return validation.Rules{
		{
			Field: "status",
			Checks: []validation.Check{validation.OneOf(
				"Status must be one of pending, processed, completed",
				FormStatusPending, FormStatusProcessed, FormStatusCompleted,
			)},
		},
	}
}

// ListFormsRequest has no parameters.
type ListFormsRequest struct{}

func (*ListFormsRequest) Rules() validation.Rules { return nil }
