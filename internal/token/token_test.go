package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"notes-service/internal/token"
)

func TestIssueAndVerify(t *testing.T) {
	svc := token.NewService("test-secret")

	signed, err := svc.Issue("jami@example.com", 42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)

	username, userID, err := token.Identity(claims)
	require.NoError(t, err)
	require.Equal(t, "jami@example.com", username)
	require.Equal(t, 42, userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := token.NewService("secret-one").Issue("a@b.com", 1)
	require.NoError(t, err)

	_, err = token.NewService("secret-two").Verify(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	svc := token.NewService("test-secret")

	_, err := svc.Verify("not.a.token")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestIdentity_MissingClaims(t *testing.T) {
	svc := token.NewService("test-secret")

	signed, err := svc.Issue("a@b.com", 1)
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)

	delete(claims, "id")
	_, _, err = token.Identity(claims)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestIssue_TokensCarryUniqueID(t *testing.T) {
	svc := token.NewService("test-secret")

	first, err := svc.Issue("a@b.com", 1)
	require.NoError(t, err)
	second, err := svc.Issue("a@b.com", 1)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
