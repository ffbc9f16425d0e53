package api

import (
	"github.com/gofiber/fiber/v2"

	"notes-service/internal/service"
	"notes-service/internal/token"
)

// RegisterRoutes wires the /api surface. Listing and reading notes is
// public; creating and deleting them requires a bearer token.
func RegisterRoutes(app *fiber.App, tokens *token.Service, auth *AuthHandler, users *UserHandler, notes *NoteHandler, noteService service.NoteService) {
	root := app.Group("/api")

	root.Post("/login", auth.Login)

	root.Post("/users", users.Register)
	root.Get("/users", users.List)
	root.Put("/users/:username", users.Rename)

	root.Get("/authors", notes.Authors)

	root.Get("/notes", notes.List)
	root.Post("/notes", Protected(tokens), notes.Create)
	root.Get("/notes/:id", NoteLoader(noteService), notes.Get)
	root.Put("/notes/:id", NoteLoader(noteService), notes.Update)
	root.Delete("/notes/:id", Protected(tokens), NoteLoader(noteService), notes.Delete)
}
