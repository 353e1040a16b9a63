package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/backend/internal/models"
)

func TestIssueAndValidate(t *testing.T) {
	tokens := NewTokenService("test-secret")
	user := &models.User{
		ID:    42,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleAdmin,
	}

	raw, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := tokens.Validate(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)

	// Tokens carry no expiry; they outlive any clock.
	assert.Nil(t, claims.ExpiresAt)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret")

	_, err := tokens.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	raw, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	tokens := NewTokenService("test-secret")
	raw, err := tokens.Issue(&models.User{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = tokens.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	tokens := NewTokenService("test-secret")
	user := &models.User{ID: 1, Role: models.RoleUser}

	a, err := tokens.Issue(user)
	require.NoError(t, err)
	b, err := tokens.Issue(user)
	require.NoError(t, err)

	// The jti claim makes every issued token distinct.
	assert.NotEqual(t, a, b)
}
