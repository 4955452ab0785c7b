package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"itemboard/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateToken(ctx context.Context, userID int64, token string) error
	UpdateUser(ctx context.Context, userID int64, params UpdateUserParams) (*models.User, error)
	SearchUsers(ctx context.Context, email, name string) ([]models.User, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, itemID int64) (*models.Item, error)
	GetOwned(ctx context.Context, itemID, userID int64) (*models.Item, error)
	Update(ctx context.Context, itemID, userID int64, params UpdateItemParams) (*models.Item, error)
	Delete(ctx context.Context, itemID, userID int64) error
	ReplaceImage(ctx context.Context, itemID, userID int64, image string) (string, *models.Item, error)
	Search(ctx context.Context, params SearchItemsParams) ([]models.Item, error)
}

type Repository struct {
	User UserRepository
	Item ItemRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Item: NewItemRepository(db),
	}
}
