package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"notes-service/internal/apperror"
)

const uniqueViolation = "23505"
const foreignKeyViolation = "23503"

// ErrorHandler is the terminal error-translation stage, installed as the
// Fiber error handler. Handlers and middleware return raw errors; all
// status mapping happens here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr, apperror.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(validationBody(appErr))
		case errors.Is(appErr, apperror.ErrAuthentication):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": appErr.Message})
		case errors.Is(appErr, apperror.ErrAuthorization):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": appErr.Message})
		case errors.Is(appErr, apperror.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": appErr.Message})
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username must be unique"})
		case foreignKeyViolation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "referenced user does not exist"})
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	slog.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// statusFromError mirrors ErrorHandler's status mapping for callers that
// need the code before the response is written, such as the metrics
// middleware running ahead of the Fiber error handler.
func statusFromError(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr, apperror.ErrValidation):
			return fiber.StatusBadRequest
		case errors.Is(appErr, apperror.ErrAuthentication):
			return fiber.StatusUnauthorized
		case errors.Is(appErr, apperror.ErrAuthorization):
			return fiber.StatusForbidden
		case errors.Is(appErr, apperror.ErrNotFound):
			return fiber.StatusNotFound
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation, foreignKeyViolation:
			return fiber.StatusBadRequest
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	return fiber.StatusInternalServerError
}

// validationBody renders the error field as a single string or a list,
// depending on how many messages the failure carries.
func validationBody(appErr *apperror.AppError) fiber.Map {
	if len(appErr.Messages) > 1 {
		return fiber.Map{"error": appErr.Messages}
	}
	return fiber.Map{"error": appErr.Message}
}
