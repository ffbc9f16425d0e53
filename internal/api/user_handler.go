package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"notes-service/internal/apperror"
	"notes-service/internal/service"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	v := validator.New()
	// username doubles as the account's email address
	v.RegisterAlias("isEmail", "email")

	return &UserHandler{
		userService: userService,
		validate:    v,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,isEmail"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=3"`
}

type RenameRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var request RegisterRequest

	if err := c.BodyParser(&request); err != nil {
		return apperror.Validation("cannot parse JSON body")
	}

	if err := h.validate.Struct(&request); err != nil {
		return validationError(err)
	}

	user, err := h.userService.Register(c.Context(), request.Username, request.Name, request.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.ListWithNotes(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// Rename updates the display name of the user addressed by username, not
// by surrogate id.
func (h *UserHandler) Rename(c *fiber.Ctx) error {
	var request RenameRequest

	if err := c.BodyParser(&request); err != nil {
		return apperror.Validation("cannot parse JSON body")
	}

	if err := h.validate.Struct(&request); err != nil {
		return validationError(err)
	}

	user, err := h.userService.Rename(c.Context(), c.Params("username"), request.Name)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
