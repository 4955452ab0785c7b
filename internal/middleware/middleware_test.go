package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"itemboard/internal/apperrors"
	handlers "itemboard/internal/handler"
	"itemboard/internal/models"
	"itemboard/internal/repository"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) UpdateToken(ctx context.Context, userID int64, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, userID int64, params repository.UpdateUserParams) (*models.User, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) SearchUsers(ctx context.Context, email, name string) ([]models.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestRequireAuth(t *testing.T) {
	t.Run("Токен резолвится и аккаунт попадает в контекст", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("GetUserByToken", mock.Anything, "raw-token").
			Return(&models.User{ID: 1, Email: "a@x.com"}, nil)

		var seen *models.User
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := handlers.UserFromContext(r.Context())
			require.True(t, ok)
			seen = user
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		// the header carries the bare token, no "Bearer " prefix
		req.Header.Set("Authorization", "raw-token")
		rr := httptest.NewRecorder()

		RequireAuth(userRepo)(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, seen)
		assert.Equal(t, int64(1), seen.ID)
	})

	t.Run("Неизвестный токен - 401, обработчик не вызывается", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("GetUserByToken", mock.Anything, "stale").
			Return(nil, apperrors.ErrUnauthorized)

		called := false
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		req.Header.Set("Authorization", "stale")
		rr := httptest.NewRecorder()

		RequireAuth(userRepo)(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{}`, rr.Body.String())
		assert.False(t, called)
	})

	t.Run("Пустой заголовок тоже 401", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("GetUserByToken", mock.Anything, "").
			Return(nil, apperrors.ErrUnauthorized)

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		rr := httptest.NewRecorder()

		RequireAuth(userRepo)(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("Предзапрос OPTIONS обрывается на месте", func(t *testing.T) {
		called := false
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodOptions, "/api/item", nil)
		rr := httptest.NewRecorder()

		CORSMiddleware(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.False(t, called)
	})

	t.Run("Обычный запрос проходит с заголовками", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/item", nil)
		rr := httptest.NewRecorder()

		CORSMiddleware(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	// the last middleware passed is the outermost
	Chain(inner, tag("inner"), tag("outer")).ServeHTTP(rr, req)

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
