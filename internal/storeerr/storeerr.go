// Package storeerr maps document and blob store failures onto the API's
// error taxonomy.
//
// Services call HandleError right after a store call fails, naming the
// entity involved and the message a generic failure should carry. Missing
// documents become 404, key collisions and rejected arguments become 400,
// anything else becomes a 500 that carries the driver's text as details.
// A failed precondition (e.g. a query missing its composite index) is a
// server misconfiguration and lands in the 500 group.
package storeerr

import (
	"fmt"
	"strings"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a store failure.
type Kind int

const (
	Other Kind = iota
	NotFound
	AlreadyExists
	InvalidArgument
	Unavailable
)

// KindOf classifies err by repository sentinel first, then by the gRPC
// status the Firestore driver attached to it.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return Other
	case errors.Is(err, repository.ErrNotFound):
		return NotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return AlreadyExists
	}

	var grpcErr interface{ GRPCStatus() *status.Status }
	if !errors.As(err, &grpcErr) {
		return Other
	}

	switch grpcErr.GRPCStatus().Code() {
	case codes.NotFound:
		return NotFound
	case codes.AlreadyExists:
		return AlreadyExists
	case codes.InvalidArgument:
		return InvalidArgument
	case codes.Unavailable, codes.DeadlineExceeded:
		return Unavailable
	}
	return Other
}

// HandleError converts a store error into an *errs.HTTPError.
//
// entity is the singular resource name ("blog post", "file"); failure is the
// client message used for unclassified errors ("Failed to fetch products").
// An error that already is an *errs.HTTPError is returned unchanged.
func HandleError(err error, entity, failure string) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	code := generateErrorCode(entity, KindOf(err))

	switch KindOf(err) {
	case NotFound:
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", humanizeText(entity)), true, &code).WithCause(err)

	case AlreadyExists:
		return errs.NewAlreadyExistsError(fmt.Sprintf("%s already exists", humanizeText(entity)), code).WithCause(err)

	case InvalidArgument:
		return errs.NewBadRequestError(failure, false, &code, nil, nil).WithCause(err)
	}

	return errs.NewStoreError(failure, err)
}

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. BLOG_POST_NOT_FOUND.
func generateErrorCode(entity string, kind Kind) string {
	if entity == "" {
		entity = "document"
	}
	domain := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(entity), " ", "_"))

	action := "ERROR"
	switch kind {
	case NotFound:
		action = "NOT_FOUND"
	case AlreadyExists:
		action = "ALREADY_EXISTS"
	case InvalidArgument:
		action = "INVALID"
	case Unavailable:
		action = "UNAVAILABLE"
	}
	return domain + "_" + action
}

// humanizeText capitalizes the first word of an entity name:
// "blog post" -> "Blog post".
func humanizeText(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "_", " "))
	if text == "" {
		return "Document"
	}
	first, rest, _ := strings.Cut(text, " ")
	first = cases.Title(language.English).String(first)
	if rest == "" {
		return first
	}
	return first + " " + rest
}
