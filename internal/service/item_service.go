package service

import (
	"context"
	"time"

	"itemboard/internal/config"
	"itemboard/internal/models"
	"itemboard/internal/repository"
	"itemboard/internal/storage"
)

type ItemService interface {
	Create(ctx context.Context, owner *models.User, title, description string) (*models.Item, error)
	GetByID(ctx context.Context, itemID int64) (*models.Item, error)
	Update(ctx context.Context, itemID, userID int64, params repository.UpdateItemParams) (*models.Item, error)
	Delete(ctx context.Context, itemID, userID int64) error
	Search(ctx context.Context, params repository.SearchItemsParams) ([]models.Item, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewItemService(itemRepo repository.ItemRepository, storage storage.Storage, cfg *config.Config) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

// Create stamps the owner snapshot from the resolved caller at creation
// time. The copy is deliberately never synced with later user edits.
func (s *itemService) Create(ctx context.Context, owner *models.User, title, description string) (*models.Item, error) {
	item := &models.Item{
		ID:          generateID(),
		UserID:      owner.ID,
		Title:       title,
		Description: description,
		Image:       s.storage.ObjectURL(s.cfg.Upload.DefaultImage),
		CreatedAt:   time.Now().UnixMilli(),
		OwnerName:   owner.Name,
		OwnerEmail:  owner.Email,
		OwnerPhone:  owner.Phone,
	}

	err := s.itemRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, itemID int64) (*models.Item, error) {
	return s.itemRepo.GetByID(ctx, itemID)
}

func (s *itemService) Update(ctx context.Context, itemID, userID int64, params repository.UpdateItemParams) (*models.Item, error) {
	return s.itemRepo.Update(ctx, itemID, userID, params)
}

func (s *itemService) Delete(ctx context.Context, itemID, userID int64) error {
	return s.itemRepo.Delete(ctx, itemID, userID)
}

func (s *itemService) Search(ctx context.Context, params repository.SearchItemsParams) ([]models.Item, error) {
	return s.itemRepo.Search(ctx, params)
}
