package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"notes-service/internal/api"
)

// errorApp wires a single route that fails with the given error, behind the
// service's error handler.
func errorApp(failWith error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: api.ErrorHandler})
	app.Post("/fail", func(c *fiber.Ctx) error {
		return failWith
	})
	return app
}

func failRequest(t *testing.T, failWith error) (int, map[string]any) {
	t.Helper()

	app := errorApp(failWith)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/fail", nil), -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandler_UniqueViolationIsValidationFailure(t *testing.T) {
	status, body := failRequest(t, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "username must be unique", body["error"])
}

func TestErrorHandler_ForeignKeyViolationIsValidationFailure(t *testing.T) {
	status, body := failRequest(t, &pgconn.PgError{Code: "23503", ConstraintName: "notes_user_id_fkey"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "referenced user does not exist", body["error"])
}

func TestErrorHandler_UnknownErrorIsOpaque500(t *testing.T) {
	status, body := failRequest(t, errors.New("connection reset by peer"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal server error", body["error"])
	require.NotContains(t, body["error"], "peer")
}
