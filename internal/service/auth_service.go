package service

import (
	"context"
	"fmt"

	"itemboard/internal/models"
	"itemboard/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates the account and issues its first token. The email
// uniqueness check is left entirely to the store: a duplicate surfaces as
// a ConflictError from CreateUser, never as a read-then-write race.
func (s *authService) Register(ctx context.Context, req RegisterParams) (*models.User, error) {
	token, err := issueToken()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токена: %w", err)
	}

	user := &models.User{
		ID:    generateID(),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Token: token,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login re-issues the token on every success, so the previous one stops
// resolving the moment the new one is persisted.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := issueToken()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токена: %w", err)
	}

	err = s.userRepo.UpdateToken(ctx, user.ID, token)
	if err != nil {
		return nil, err
	}

	user.Token = token
	return user, nil
}
