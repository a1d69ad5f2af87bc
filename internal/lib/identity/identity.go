// Package identity verifies caller identity tokens.
//
// Tokens are Firebase ID tokens. A caller is an administrator when the
// configured custom claim is present and true.
package identity

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// Claims is the verified identity of a caller.
type Claims struct {
	UID   string
	Email string
	Admin bool
	Raw   map[string]any
}

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// tokenVerifier is the subset of *auth.Client used here.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client     tokenVerifier
	adminClaim string
}

var _ Verifier = (*FirebaseVerifier)(nil)

// NewFirebaseVerifier wraps an auth client. adminClaim names the boolean
// custom claim that grants admin access.
func NewFirebaseVerifier(client *auth.Client, adminClaim string) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, adminClaim: adminClaim}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "verify id token")
	}
	if decoded == nil {
		return nil, errors.New("verify id token: no claims")
	}
	return claimsFromToken(decoded, v.adminClaim), nil
}

func claimsFromToken(token *auth.Token, adminClaim string) *Claims {
	claims := &Claims{
		UID: token.UID,
		Raw: token.Claims,
	}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if admin, ok := token.Claims[adminClaim].(bool); ok {
		claims.Admin = admin
	}
	return claims
}
