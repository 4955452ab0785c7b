package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"itemboard/internal/apperrors"
	"itemboard/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

// UpdateUserParams carries the self-update fields; empty strings mean
// "leave as is" (the original merged only the fields present in the body).
type UpdateUserParams struct {
	Email        string
	Name         string
	Phone        string
	PasswordHash string
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// uniqueViolation reports whether err is a postgres unique-constraint
// violation on a constraint whose name mentions the given column.
func uniqueViolation(err error, column string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, column)
	}
	return false
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.PasswordHash = string(hashedPassword)

	query := `
		INSERT INTO users (id, name, email, password_hash, phone, token)
		VALUES (:id, :name, :email, :password_hash, :phone, :token)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if uniqueViolation(err, "email") {
			return apperrors.EmailConflict()
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

// GetUserByToken resolves the opaque bearer token to its account. It is
// the only way a token is ever verified.
func (r *userRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var user models.User

	query := `SELECT * FROM users WHERE token = $1`

	err := r.db.GetContext(ctx, &user, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по токену: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrWrongEmail
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, apperrors.ErrWrongPassword
	}

	return &user, nil
}

func (r *userRepository) UpdateToken(ctx context.Context, userID int64, token string) error {
	query := `UPDATE users SET token = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении токена: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrUnauthorized
	}

	return nil
}

// UpdateUser merges the present fields into the stored record in a single
// atomic statement and returns the updated row.
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, params UpdateUserParams) (*models.User, error) {
	setParts := []string{}
	args := []interface{}{}

	addSet := func(column, value string) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Email != "" {
		addSet("email", params.Email)
	}
	if params.Name != "" {
		addSet("name", params.Name)
	}
	if params.Phone != "" {
		addSet("phone", params.Phone)
	}
	if params.PasswordHash != "" {
		addSet("password_hash", params.PasswordHash)
	}

	if len(setParts) == 0 {
		// nothing to merge, behave as a plain read
		return r.GetUserByID(ctx, userID)
	}

	args = append(args, userID)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING *`,
		strings.Join(setParts, ", "), len(args),
	)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUnauthorized
		}
		if uniqueViolation(err, "email") {
			return nil, apperrors.EmailConflict()
		}
		return nil, fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	return &user, nil
}

// SearchUsers filters by exact email or exact name; email wins when both
// are present, no filters returns everyone. A miss is an empty slice.
func (r *userRepository) SearchUsers(ctx context.Context, email, name string) ([]models.User, error) {
	query := `SELECT * FROM users`
	args := []interface{}{}

	if email != "" {
		query += ` WHERE email = $1`
		args = append(args, email)
	} else if name != "" {
		query += ` WHERE name = $1`
		args = append(args, name)
	}

	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователей: %w", err)
	}

	return users, nil
}
