package service

import (
	"context"

	"notes-service/internal/apperror"
	"notes-service/internal/events"
	"notes-service/internal/model"
	"notes-service/internal/repository"
)

// NewNote is the accepted shape of a note creation request. Owner and
// creation date are stamped by the service, never taken from the body.
type NewNote struct {
	Content   string
	Author    string
	Important bool
	Likes     int
}

// NoteUpdate carries the mutable note fields; nil means "leave unchanged".
type NoteUpdate struct {
	Important *bool
	Likes     *int
}

type NoteService interface {
	Create(ctx context.Context, ownerID int, in NewNote) (*model.Note, error)
	Get(ctx context.Context, id int) (*model.Note, error)
	List(ctx context.Context, filter repository.NoteFilter) ([]model.Note, error)
	Update(ctx context.Context, note *model.Note, in NoteUpdate) (*model.Note, error)
	Delete(ctx context.Context, note *model.Note, requesterID int) error
	AuthorStats(ctx context.Context) ([]model.AuthorStat, error)
}

type noteService struct {
	noteRepo  repository.NoteRepository
	userRepo  repository.UserRepository
	publisher events.EventPublisher
}

func NewNoteService(noteRepo repository.NoteRepository, userRepo repository.UserRepository, pub events.EventPublisher) NoteService {
	return &noteService{noteRepo: noteRepo, userRepo: userRepo, publisher: pub}
}

func (s *noteService) Create(ctx context.Context, ownerID int, in NewNote) (*model.Note, error) {
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		// valid token for a user that no longer exists
		return nil, apperror.Unauthorized("user for token not found")
	}

	author := in.Author
	if author == "" {
		author = owner.Name
	}

	note := &model.Note{
		Content:   in.Content,
		Author:    author,
		Important: in.Important,
		Likes:     in.Likes,
		UserID:    &owner.ID,
		OwnerName: &owner.Name,
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishNoteCreated(created)

	return created, nil
}

func (s *noteService) Get(ctx context.Context, id int) (*model.Note, error) {
	return s.noteRepo.FindByID(ctx, id)
}

func (s *noteService) List(ctx context.Context, filter repository.NoteFilter) ([]model.Note, error) {
	return s.noteRepo.List(ctx, filter)
}

func (s *noteService) Update(ctx context.Context, note *model.Note, in NoteUpdate) (*model.Note, error) {
	if in.Important != nil {
		note.Important = *in.Important
	}
	if in.Likes != nil {
		note.Likes = *in.Likes
	}
	return s.noteRepo.Update(ctx, note)
}

// Delete removes a note when the requester owns it. A missing note is a
// no-op; a note owned by someone else (or by nobody) is forbidden.
func (s *noteService) Delete(ctx context.Context, note *model.Note, requesterID int) error {
	if note == nil {
		return nil
	}
	if note.UserID == nil || *note.UserID != requesterID {
		return apperror.Forbidden("only the owner may delete a note")
	}
	return s.noteRepo.Delete(ctx, note.ID)
}

func (s *noteService) AuthorStats(ctx context.Context) ([]model.AuthorStat, error) {
	return s.noteRepo.AuthorStats(ctx)
}
