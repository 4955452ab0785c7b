package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"itemboard/internal/config"
	"itemboard/internal/models"
	"itemboard/internal/service"
)

// HealthChecker is what the health endpoint needs from the database.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	ItemService   service.ItemService
	UploadService service.UploadService
	DB            HealthChecker
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(services *service.Service, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:   services.Auth,
		UserService:   services.User,
		ItemService:   services.Item,
		UploadService: services.Upload,
		DB:            db,
		Cfg:           cfg,
		Validate:      validator.New(),
	}
}

type contextKey string

const userContextKey contextKey = "currentUser"

// WithUser stores the account resolved by the auth gateway.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the account resolved by the auth gateway.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
