package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"notes-service/internal/apperror"
	"notes-service/internal/model"
	"notes-service/internal/repository"
	"notes-service/internal/token"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login validates the credential pair and issues a signed token carrying
// the user's identity. Unknown users and wrong passwords are reported
// identically.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperror.Unauthorized("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Unauthorized("invalid username or password")
	}

	signed, err := s.tokens.Issue(user.Username, user.ID)
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}
