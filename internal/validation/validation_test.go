package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemRequest struct {
	ID    string   `param:"id" json:"-"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Price float64  `json:"price"`
	Note  *string  `json:"note"`
	Tags  []string `json:"tags"`
}

func (*itemRequest) Rules() Rules {
	return Rules{
		{Field: "name", Checks: []Check{NotEmpty("Name is required")}, Sanitizers: []Sanitizer{Trim, Escape}},
		{Field: "email", Checks: []Check{IsEmail("Invalid email")}, Sanitizers: []Sanitizer{NormalizeEmail}},
		{Field: "price", Checks: []Check{FloatMin(0, "Price must be positive")}, Sanitizers: []Sanitizer{ToFloat}},
		{Field: "note", Optional: true, Checks: []Check{IsString("Note must be a string")}},
		{Field: "tags", Optional: true, Checks: []Check{IsArray("Tags should be an array")}},
	}
}

type noRules struct {
	Category string `query:"category"`
}

func (*noRules) Rules() Rules { return nil }

func fields(fe []errs.FieldError) map[string]string {
	out := make(map[string]string, len(fe))
	for _, e := range fe {
		out[e.Field] = e.Error
	}
	return out
}

func TestApply(t *testing.T) {
	rules := (&itemRequest{}).Rules()

	tests := []struct {
		name string
		body map[string]any
		want map[string]string
	}{
		{
			name: "valid body",
			body: map[string]any{"name": "Mug", "email": "a@b.co", "price": 3.5},
			want: map[string]string{},
		},
		{
			name: "missing required fields report their first message",
			body: map[string]any{},
			want: map[string]string{
				"name":  "Name is required",
				"email": "Invalid email",
				"price": "Price must be positive",
			},
		},
		{
			name: "null counts as absent",
			body: map[string]any{"name": nil, "email": "a@b.co", "price": 1.0},
			want: map[string]string{"name": "Name is required"},
		},
		{
			name: "blank string is empty",
			body: map[string]any{"name": "   ", "email": "a@b.co", "price": 1.0},
			want: map[string]string{"name": "Name is required"},
		},
		{
			name: "numeric string passes floatmin",
			body: map[string]any{"name": "x", "email": "a@b.co", "price": "12"},
			want: map[string]string{},
		},
		{
			name: "wrong types",
			body: map[string]any{"name": "x", "email": 42.0, "price": "abc", "note": 1.0, "tags": "go"},
			want: map[string]string{
				"email": "Invalid email",
				"price": "Price must be positive",
				"note":  "Note must be a string",
				"tags":  "Tags should be an array",
			},
		},
		{
			name: "negative price",
			body: map[string]any{"name": "x", "email": "a@b.co", "price": -0.01},
			want: map[string]string{"price": "Price must be positive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(Apply(rules, tt.body)))
		})
	}
}

func TestOneOf(t *testing.T) {
	rules := Rules{{Field: "status", Checks: []Check{OneOf("bad status", "pending", "processed")}}}

	assert.Empty(t, Apply(rules, map[string]any{"status": "processed"}))
	assert.Len(t, Apply(rules, map[string]any{"status": "archived"}), 1)
	assert.Len(t, Apply(rules, map[string]any{"status": 1.0}), 1)
}

func TestSanitize(t *testing.T) {
	body := map[string]any{
		"name":  "  <b>Mug</b> ",
		"email": " Ann@Example.COM ",
		"price": "12.50",
	}

	Sanitize((&itemRequest{}).Rules(), body)

	assert.Equal(t, "&lt;b&gt;Mug&lt;/b&gt;", body["name"])
	assert.Equal(t, "ann@example.com", body["email"])
	assert.Equal(t, 12.5, body["price"])
	assert.NotContains(t, body, "note")
}

func TestToString(t *testing.T) {
	assert.Equal(t, "812", ToString(812.0))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "abc", ToString("abc"))
}

func TestToStringSlice(t *testing.T) {
	assert.Equal(t, []any{"1", "go", "true"}, ToStringSlice([]any{1.0, "go", true}))
	assert.Equal(t, []any{}, ToStringSlice([]any{}))
	assert.Equal(t, "go", ToStringSlice("go"))
}

func TestBindAndValidateCoercesArrayElements(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/items", echo.MIMEApplicationJSON,
		`{"name":"x","email":"a@b.co","price":1,"tags":[1,"go",2.5]}`)

	req := &taggedRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, []string{"1", "go", "2.5"}, req.Tags)
}

type taggedRequest struct {
	itemRequest
}

func (*taggedRequest) Rules() Rules {
	rules := (&itemRequest{}).Rules()
	for i := range rules {
		if rules[i].Field == "tags" {
			rules[i].Sanitizers = append(rules[i].Sanitizers, ToStringSlice)
		}
	}
	return rules
}

func newContext(method, target, contentType, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	t.Run("json body and path param", func(t *testing.T) {
		c, _ := newContext(http.MethodPut, "/items/7", echo.MIMEApplicationJSON,
			`{"name":" Mug ","email":"A@B.co","price":"4","tags":["a","b"]}`)
		c.SetParamNames("id")
		c.SetParamValues("7")

		req := &itemRequest{}
		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, "7", req.ID)
		assert.Equal(t, "Mug", req.Name)
		assert.Equal(t, "a@b.co", req.Email)
		assert.Equal(t, 4.0, req.Price)
		assert.Nil(t, req.Note)
		assert.Equal(t, []string{"a", "b"}, req.Tags)
	})

	t.Run("urlencoded body", func(t *testing.T) {
		form := url.Values{"name": {"Mug"}, "email": {"a@b.co"}, "price": {"2"}, "tags": {"x", "y"}}
		c, _ := newContext(http.MethodPost, "/items", echo.MIMEApplicationForm, form.Encode())

		req := &itemRequest{}
		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, 2.0, req.Price)
		assert.Equal(t, []string{"x", "y"}, req.Tags)
	})

	t.Run("every failing field is reported", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/items", echo.MIMEApplicationJSON, `{"email":"nope"}`)

		httpErr := requireBadRequest(t, BindAndValidate(c, &itemRequest{}))
		assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
		assert.Len(t, httpErr.Errors, 3)
	})

	t.Run("empty body is an empty object", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/items", echo.MIMEApplicationJSON, "")

		httpErr := requireBadRequest(t, BindAndValidate(c, &itemRequest{}))
		assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/items", echo.MIMEApplicationJSON, `{"name":`)

		httpErr := requireBadRequest(t, BindAndValidate(c, &itemRequest{}))
		assert.Equal(t, "Request body must be a JSON object", httpErr.Message)
	})

	t.Run("type not covered by a rule", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/items", echo.MIMEApplicationJSON,
			`{"name":"x","email":"a@b.co","price":1,"tags":[1,2]}`)

		httpErr := requireBadRequest(t, BindAndValidate(c, &itemRequest{}))
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "tags", httpErr.Errors[0].Field)
	})

	t.Run("query params without rules", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/items?category=books", "", "")

		req := &noRules{}
		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, "books", req.Category)
	})
}
