package service

import (
	"itemboard/internal/config"
	"itemboard/internal/repository"
	"itemboard/internal/storage"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Item   ItemService
	Upload UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User),
		User:   NewUserService(rep.User),
		Item:   NewItemService(rep.Item, storage, cfg),
		Upload: NewUploadService(rep.User, rep.Item, storage, cfg),
	}
}
