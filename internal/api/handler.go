package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"notes-service/internal/apperror"
	"notes-service/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return apperror.Validation("cannot parse JSON body")
	}

	if err := h.validate.Struct(&request); err != nil {
		return validationError(err)
	}

	signed, user, err := h.authService.Login(c.Context(), request.Username, request.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Token:    signed,
		Username: user.Username,
		Name:     user.Name,
	})
}

// validationError converts validator failures into the application error
// shape, one message per failed field, each naming the validator that
// rejected it.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(err.Error())
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fmt.Sprintf("validation %s failed on field %s", e.Tag(), strings.ToLower(e.Field())))
	}
	return apperror.Validation(messages...)
}
