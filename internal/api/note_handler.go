package api

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"notes-service/internal/apperror"
	"notes-service/internal/model"
	"notes-service/internal/repository"
	"notes-service/internal/service"
)

type NoteHandler struct {
	noteService service.NoteService
	validate    *validator.Validate
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validate:    validator.New(),
	}
}

type CreateNoteRequest struct {
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author"`
	Important bool   `json:"important"`
	Likes     int    `json:"likes" validate:"min=0"`
}

type UpdateNoteRequest struct {
	Important *bool `json:"important"`
	Likes     *int  `json:"likes"`
}

// NoteResponse is the wire shape of a note: the foreign key never appears;
// the owner is projected to name only, null for orphaned notes.
type NoteResponse struct {
	ID        int          `json:"id"`
	Content   string       `json:"content"`
	Author    string       `json:"author"`
	Important bool         `json:"important"`
	Likes     int          `json:"likes"`
	Date      time.Time    `json:"date"`
	User      *model.Owner `json:"user"`
}

func toNoteResponse(n *model.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Content:   n.Content,
		Author:    n.Author,
		Important: n.Important,
		Likes:     n.Likes,
		Date:      n.Date,
		User:      n.User(),
	}
}

// filterFromQuery translates the recognized query parameters into a note
// filter. Absent parameters contribute nothing to the filter.
func filterFromQuery(c *fiber.Ctx) (repository.NoteFilter, error) {
	filter := repository.NoteFilter{
		Search:       c.Query("search"),
		OrderByLikes: c.Query("order") == "likes",
	}

	switch raw := c.Query("important"); raw {
	case "":
	case "true":
		v := true
		filter.Important = &v
	case "false":
		v := false
		filter.Important = &v
	default:
		return filter, apperror.Validation(fmt.Sprintf("important must be true or false, got %q", raw))
	}

	return filter, nil
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	response := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		response = append(response, toNoteResponse(&notes[i]))
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	_, userID, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	var request CreateNoteRequest
	if err := c.BodyParser(&request); err != nil {
		return apperror.Validation("cannot parse JSON body")
	}

	if err := h.validate.Struct(&request); err != nil {
		return validationError(err)
	}

	note, err := h.noteService.Create(c.Context(), userID, service.NewNote{
		Content:   request.Content,
		Author:    request.Author,
		Important: request.Important,
		Likes:     request.Likes,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toNoteResponse(note))
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	note := noteFromCtx(c)
	if note == nil {
		return apperror.NotFound("note", c.Params("id"))
	}

	return c.Status(fiber.StatusOK).JSON(toNoteResponse(note))
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	note := noteFromCtx(c)
	if note == nil {
		return apperror.NotFound("note", c.Params("id"))
	}

	var request UpdateNoteRequest
	if err := c.BodyParser(&request); err != nil {
		return apperror.Validation("cannot parse JSON body")
	}

	updated, err := h.noteService.Update(c.Context(), note, service.NoteUpdate{
		Important: request.Important,
		Likes:     request.Likes,
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return apperror.NotFound("note", c.Params("id"))
	}

	updated.OwnerName = note.OwnerName
	return c.Status(fiber.StatusOK).JSON(toNoteResponse(updated))
}

// Delete is idempotent: removing an absent note succeeds. Removing a note
// owned by someone else does not.
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	_, userID, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	note := noteFromCtx(c)
	if err := h.noteService.Delete(c.Context(), note, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NoteHandler) Authors(c *fiber.Ctx) error {
	stats, err := h.noteService.AuthorStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func noteFromCtx(c *fiber.Ctx) *model.Note {
	note, _ := c.Locals(localsNoteKey).(*model.Note)
	return note
}
