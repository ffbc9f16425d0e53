package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"notes-service/internal/apperror"
	"notes-service/internal/events"
	"notes-service/internal/model"
	"notes-service/internal/repository"
)

type UserService interface {
	Register(ctx context.Context, username, name, password string) (*model.User, error)
	ListWithNotes(ctx context.Context) ([]model.User, error)
	Rename(ctx context.Context, username, name string) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	publisher events.EventPublisher
}

func NewUserService(userRepo repository.UserRepository, pub events.EventPublisher) UserService {
	return &userService{userRepo: userRepo, publisher: pub}
}

func (s *userService) Register(ctx context.Context, username, name, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hashed),
		Notes:        []model.Note{},
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	go s.publisher.PublishUserRegistered(user)

	return user, nil
}

func (s *userService) ListWithNotes(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListWithNotes(ctx)
}

// Rename updates a user's display name. The user is keyed by username, not
// by surrogate id.
func (s *userService) Rename(ctx context.Context, username, name string) (*model.User, error) {
	user, err := s.userRepo.RenameByUsername(ctx, username, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user", username)
	}
	return user, nil
}
