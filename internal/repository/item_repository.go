package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"itemboard/internal/apperrors"
	"itemboard/internal/models"
)

type itemRepository struct {
	db *sqlx.DB
}

// UpdateItemParams carries the mutable item fields; empty strings mean
// "leave as is".
type UpdateItemParams struct {
	Title       string
	Description string
}

type SearchItemsParams struct {
	Title     string
	UserID    int64
	OrderBy   string
	OrderDesc bool
}

// orderColumns is the whitelist for ORDER BY, everything else falls back
// to created_at.
var orderColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"id":         "id",
}

func NewItemRepository(db *sqlx.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, user_id, title, description, image, created_at, owner_name, owner_email, owner_phone)
		VALUES (:id, :user_id, :title, :description, :image, :created_at, :owner_name, :owner_email, :owner_phone)
	`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("ошибка при создании объявления: %w", err)
	}

	return nil
}

// GetByID has no ownership constraint: reads by id are public.
func (r *itemRepository) GetByID(ctx context.Context, itemID int64) (*models.Item, error) {
	var item models.Item

	query := `SELECT * FROM items WHERE id = $1`

	err := r.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении объявления: %w", err)
	}

	return &item, nil
}

// GetOwned finds the item only when it belongs to the given user. A
// non-owner's miss is indistinguishable from a missing item.
func (r *itemRepository) GetOwned(ctx context.Context, itemID, userID int64) (*models.Item, error) {
	var item models.Item

	query := `SELECT * FROM items WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &item, query, itemID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении объявления: %w", err)
	}

	return &item, nil
}

// Update mutates the item in one atomic match-and-mutate scoped by
// (id, user_id). A non-owner gets the same ErrNotFound as a missing item.
func (r *itemRepository) Update(ctx context.Context, itemID, userID int64, params UpdateItemParams) (*models.Item, error) {
	setParts := []string{}
	args := []interface{}{}

	if params.Title != "" {
		args = append(args, params.Title)
		setParts = append(setParts, fmt.Sprintf("title = $%d", len(args)))
	}
	if params.Description != "" {
		args = append(args, params.Description)
		setParts = append(setParts, fmt.Sprintf("description = $%d", len(args)))
	}

	args = append(args, itemID, userID)
	query := fmt.Sprintf(
		`UPDATE items SET %s WHERE id = $%d AND user_id = $%d RETURNING *`,
		strings.Join(setParts, ", "), len(args)-1, len(args),
	)

	var item models.Item
	err := r.db.GetContext(ctx, &item, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при обновлении объявления: %w", err)
	}

	return &item, nil
}

func (r *itemRepository) Delete(ctx context.Context, itemID, userID int64) error {
	query := `DELETE FROM items WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении объявления: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ReplaceImage swaps the image reference in one ownership-scoped statement
// and returns both the previous reference and the updated item. The
// previous reference is what detach needs to clean the old file up.
func (r *itemRepository) ReplaceImage(ctx context.Context, itemID, userID int64, image string) (string, *models.Item, error) {
	query := `
		UPDATE items AS i SET image = $1
		FROM (SELECT id, image FROM items WHERE id = $2 AND user_id = $3 FOR UPDATE) AS old
		WHERE i.id = old.id
		RETURNING old.image, i.id, i.user_id, i.title, i.description, i.image, i.created_at, i.owner_name, i.owner_email, i.owner_phone
	`

	var prevImage string
	var item models.Item
	err := r.db.QueryRowxContext(ctx, query, image, itemID, userID).Scan(
		&prevImage,
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Description,
		&item.Image,
		&item.CreatedAt,
		&item.OwnerName,
		&item.OwnerEmail,
		&item.OwnerPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, apperrors.ErrNotFound
		}
		return "", nil, fmt.Errorf("ошибка при обновлении изображения объявления: %w", err)
	}

	return prevImage, &item, nil
}

func (r *itemRepository) Search(ctx context.Context, params SearchItemsParams) ([]models.Item, error) {
	query := `SELECT * FROM items`
	conditions := []string{}
	args := []interface{}{}

	if params.Title != "" {
		args = append(args, params.Title)
		conditions = append(conditions, fmt.Sprintf("title = $%d", len(args)))
	}
	if params.UserID != 0 {
		args = append(args, params.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	orderBy, ok := orderColumns[params.OrderBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "ASC"
	if params.OrderDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderBy, direction)

	items := []models.Item{}
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске объявлений: %w", err)
	}

	return items, nil
}
