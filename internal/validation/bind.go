package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/labstack/echo/v4"
)

// BindAndValidate fills payload from the request and validates it.
//
// Path parameters (`param` tags) and, for GET and DELETE, query parameters
// (`query` tags) are bound first. When the payload declares rules, the body
// is read as JSON, urlencoded or multipart form, checked with Apply, then
// sanitized and decoded into payload. Any failure is a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError("Invalid path parameters", false, nil, nil, nil).WithCause(err)
	}

	method := c.Request().Method
	if method == http.MethodGet || method == http.MethodDelete {
		if err := binder.BindQueryParams(c, payload); err != nil {
			return errs.NewBadRequestError("Invalid query parameters", false, nil, nil, nil).WithCause(err)
		}
	}

	rules := payload.Rules()
	if len(rules) == 0 {
		return nil
	}

	body, err := readBody(c)
	if err != nil {
		return err
	}

	if fieldErrors := Apply(rules, body); len(fieldErrors) > 0 {
		return errs.NewValidationError(fieldErrors)
	}

	Sanitize(rules, body)

	return decode(body, payload)
}

func readBody(c echo.Context) (map[string]any, error) {
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		body := map[string]any{}
		err := json.NewDecoder(req.Body).Decode(&body)
		if errors.Is(err, io.EOF) {
			return body, nil
		}
		if err != nil {
			return nil, errs.NewBadRequestError("Request body must be a JSON object", true, nil, nil, nil).WithCause(err)
		}
		return body, nil

	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		params, err := c.FormParams()
		if err != nil {
			return nil, errs.NewBadRequestError("Malformed form body", true, nil, nil, nil).WithCause(err)
		}
		body := make(map[string]any, len(params))
		for key, values := range params {
			if len(values) == 1 {
				body[key] = values[0]
				continue
			}
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = v
			}
			body[key] = list
		}
		return body, nil
	}

	return map[string]any{}, nil
}

// decode copies the sanitized body into payload. Type mismatches that the
// rules do not cover (e.g. a non-string tag) become field errors.
func decode(body map[string]any, payload Validatable) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errs.NewBadRequestError("Request body could not be read", false, nil, nil, nil).WithCause(err)
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if i := strings.IndexByte(field, '.'); i >= 0 {
				field = field[:i]
			}
			return errs.NewValidationError([]errs.FieldError{{
				Field: field,
				Error: "has an invalid type",
			}})
		}
		return errs.NewBadRequestError("Request body could not be read", false, nil, nil, nil).WithCause(err)
	}

	return nil
}
