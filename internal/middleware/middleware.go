package middleware

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	handlers "itemboard/internal/handler"
	"itemboard/internal/repository"
)

type Middleware func(http.Handler) http.Handler

// RequireAuth is the auth gateway: it resolves the raw Authorization
// header value to an account through the user store and puts the account
// into the request context. The header carries the bare token, no
// "Bearer " prefix. No expiry check exists: a token resolves until the
// next login replaces it.
func RequireAuth(userRepo repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")

			user, err := userRepo.GetUserByToken(r.Context(), token)
			if err != nil {
				handlers.WriteAppError(w, err)
				return
			}

			ctx := handlers.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		log.Printf("[%s] %s %s", requestID, r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
