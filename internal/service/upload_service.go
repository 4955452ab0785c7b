package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"itemboard/internal/apperrors"
	"itemboard/internal/config"
	"itemboard/internal/models"
	"itemboard/internal/repository"
	"itemboard/internal/storage"
)

// UploadService runs the image pipeline: validate the file against the
// quota rules, confirm ownership of the target item, write the object,
// then swap the item's image reference. File validation runs before the
// token is even resolved, so a bad file is reported as 422 regardless of
// credentials.
type UploadService interface {
	UploadItemImage(ctx context.Context, token string, itemID int64, file *UploadedFile) (*models.Item, error)
	RemoveItemImage(ctx context.Context, itemID, userID int64) error
}

// UploadedFile is the already-read multipart part. Unreadable marks a
// part whose body could not be consumed.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
	Unreadable  bool
}

type uploadService struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUploadService(userRepo repository.UserRepository, itemRepo repository.ItemRepository, storage storage.Storage, cfg *config.Config) UploadService {
	return &uploadService{
		userRepo: userRepo,
		itemRepo: itemRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *uploadService) UploadItemImage(ctx context.Context, token string, itemID int64, file *UploadedFile) (*models.Item, error) {
	if err := s.validateFile(file); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// ownership check before anything is written
	_, err = s.itemRepo.GetOwned(ctx, itemID, user.ID)
	if err != nil {
		return nil, err
	}

	fileExt := strings.ToLower(filepath.Ext(file.Name))
	objectName := fmt.Sprintf("%d%s", itemID, fileExt)

	imageURL, err := s.storage.UploadImage(ctx, objectName, bytes.NewReader(file.Data), int64(len(file.Data)), s.detectMimeType(file))
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения в хранилище: %w", err)
	}

	// the object write and the record update are two independent steps;
	// on a failed update the fresh object is removed best-effort
	_, item, err := s.itemRepo.ReplaceImage(ctx, itemID, user.ID, imageURL)
	if err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("не удалось удалить файл %s из хранилища: %v", objectName, delErr)
		}
		return nil, err
	}

	return item, nil
}

// RemoveItemImage restores the default reference, then deletes the old
// object best-effort. A failed delete (including an already-missing file)
// is logged and the operation still succeeds.
func (s *uploadService) RemoveItemImage(ctx context.Context, itemID, userID int64) error {
	defaultImage := s.storage.ObjectURL(s.cfg.Upload.DefaultImage)

	prevImage, _, err := s.itemRepo.ReplaceImage(ctx, itemID, userID, defaultImage)
	if err != nil {
		return err
	}

	if prevImage != defaultImage {
		objectName := path.Base(prevImage)
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("не удалось удалить файл %s из хранилища: %v", objectName, delErr)
		}
	}

	return nil
}

// validateFile collects every quota violation into one list, except the
// missing file itself, which makes the other checks meaningless.
func (s *uploadService) validateFile(file *UploadedFile) error {
	vErr := &apperrors.ValidationError{}

	if file == nil {
		vErr.Add("image", "no file to upload")
		return vErr
	}

	if file.Unreadable {
		vErr.Add("image", "can not read file")
	}
	if int64(len(file.Data)) > s.cfg.Upload.MaxFileSize {
		vErr.Add("image", fmt.Sprintf("file %s is too big", file.Name))
	}
	if !slices.Contains(s.cfg.Upload.AcceptedMimeTypes, s.detectMimeType(file)) {
		vErr.Add("image", fmt.Sprintf("mimetype of %s does not accepted", file.Name))
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// detectMimeType prefers the declared part Content-Type and falls back to
// sniffing the bytes.
func (s *uploadService) detectMimeType(file *UploadedFile) string {
	contentType := file.ContentType
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType != "" {
		return contentType
	}

	return mimetype.Detect(file.Data).String()
}
