package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"notes-service/internal/apperror"
	"notes-service/internal/service"
	"notes-service/internal/token"
)

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

const (
	localsClaimsKey = "userClaims"
	localsNoteKey   = "note"
)

// Protected extracts and verifies the bearer token, attaching the decoded
// claims to the request. A missing or malformed header short-circuits with
// 401; the handler never runs.
func Protected(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperror.Unauthorized("token missing")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperror.Unauthorized("token missing")
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if err == token.ErrExpiredToken {
				return apperror.Unauthorized("token expired")
			}
			return apperror.Unauthorized("token invalid")
		}

		c.Locals(localsClaimsKey, claims)

		return c.Next()
	}
}

// IdentityFromCtx recovers the acting user from claims attached by
// Protected.
func IdentityFromCtx(c *fiber.Ctx) (string, int, error) {
	claims, ok := c.Locals(localsClaimsKey).(jwt.MapClaims)
	if !ok {
		return "", 0, apperror.Unauthorized("token missing")
	}
	username, userID, err := token.Identity(claims)
	if err != nil {
		return "", 0, apperror.Unauthorized("token invalid")
	}
	return username, userID, nil
}

// NoteLoader fetches the note named by the :id path parameter and attaches
// it to the request, found or not. The handler decides what a missing note
// means for its verb.
func NoteLoader(notes service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return apperror.Validation(fmt.Sprintf("malformed id %q", c.Params("id")))
		}

		note, err := notes.Get(c.Context(), id)
		if err != nil {
			return err
		}

		c.Locals(localsNoteKey, note)

		return c.Next()
	}
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		// the error handler has not run yet, so the response still says 200
		if err != nil {
			statusCode = statusFromError(err)
		}

		method := c.Method()
		path := c.Path()
		statusStr := fmt.Sprintf("%d", statusCode)

		httpRequestTotal.WithLabelValues(method, path, statusStr).Inc()
		httpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		return err
	}
}
