package identity

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	token *auth.Token
	err   error
}

func (s stubClient) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return s.token, s.err
}

func TestVerifyToken(t *testing.T) {
	t.Run("admin claim true", func(t *testing.T) {
		v := &FirebaseVerifier{adminClaim: "admin", client: stubClient{token: &auth.Token{
			UID:    "u1",
			Claims: map[string]interface{}{"admin": true, "email": "a@b.co"},
		}}}

		claims, err := v.VerifyToken(context.Background(), "tok")
		require.NoError(t, err)
		assert.True(t, claims.Admin)
		assert.Equal(t, "u1", claims.UID)
		assert.Equal(t, "a@b.co", claims.Email)
	})

	t.Run("non-boolean claim is not admin", func(t *testing.T) {
		v := &FirebaseVerifier{adminClaim: "admin", client: stubClient{token: &auth.Token{
			UID:    "u2",
			Claims: map[string]interface{}{"admin": "yes"},
		}}}

		claims, err := v.VerifyToken(context.Background(), "tok")
		require.NoError(t, err)
		assert.False(t, claims.Admin)
	})

	t.Run("custom claim name", func(t *testing.T) {
		v := &FirebaseVerifier{adminClaim: "staff", client: stubClient{token: &auth.Token{
			Claims: map[string]interface{}{"admin": true, "staff": true},
		}}}

		claims, err := v.VerifyToken(context.Background(), "tok")
		require.NoError(t, err)
		assert.True(t, claims.Admin)
	})

	t.Run("verification failure", func(t *testing.T) {
		v := &FirebaseVerifier{adminClaim: "admin", client: stubClient{err: errors.New("expired")}}

		_, err := v.VerifyToken(context.Background(), "tok")
		assert.ErrorContains(t, err, "expired")
	})
}
