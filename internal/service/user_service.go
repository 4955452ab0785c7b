package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"itemboard/internal/apperrors"
	"itemboard/internal/models"
	"itemboard/internal/repository"
)

type UserService interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateSelf(ctx context.Context, userID int64, req UpdateSelfParams) (*models.User, error)
	Search(ctx context.Context, email, name string) ([]models.User, error)
}

type UpdateSelfParams struct {
	Email           string
	Name            string
	Phone           string
	CurrentPassword string
	NewPassword     string
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateSelf merges the present fields into the caller's own record.
// A current_password without a new_password is rejected; the password is
// only re-hashed when a change was actually requested.
func (s *userService) UpdateSelf(ctx context.Context, userID int64, req UpdateSelfParams) (*models.User, error) {
	if req.CurrentPassword != "" && req.NewPassword == "" {
		vErr := &apperrors.ValidationError{}
		vErr.AddRequired("new_password")
		return nil, vErr
	}

	params := repository.UpdateUserParams{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	}

	if req.CurrentPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
		}
		params.PasswordHash = string(hashedPassword)
	}

	return s.userRepo.UpdateUser(ctx, userID, params)
}

func (s *userService) Search(ctx context.Context, email, name string) ([]models.User, error) {
	return s.userRepo.SearchUsers(ctx, email, name)
}
