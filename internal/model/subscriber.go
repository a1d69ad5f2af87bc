package model

import "github.com/deppfellow/portfolio-api/internal/validation"

// SubscribeRequest is the body of POST /subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

func (*SubscribeRequest) Rules() validation.Rules {
	return validation.Rules{
		{
			Field:      "email",
			Checks:     []validation.Check{validation.IsEmail("Invalid email format")},
			Sanitizers: []validation.Sanitizer{validation.NormalizeEmail},
		},
	}
}

// UnsubscribeRequest addresses a subscriber by email.
type UnsubscribeRequest struct {
	Email string `param:"email" json:"-"`
}

func (*UnsubscribeRequest) Rules() validation.Rules { return nil }

// ListSubscribersRequest has no parameters.
type ListSubscribersRequest struct{}

func (*ListSubscribersRequest) Rules() validation.Rules { return nil }

// VisitorCountRequest has no parameters.
type VisitorCountRequest struct{}

func (*VisitorCountRequest) Rules() validation.Rules { return nil }

type VisitorCountResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
