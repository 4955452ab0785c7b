package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"itemboard/cmd/app"
	"itemboard/internal/config"
	handlers "itemboard/internal/handler"
	"itemboard/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	auth := middleware.RequireAuth(repo.User)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/login", handler.Login).Methods(http.MethodPost)

	r.Handle("/api/me", auth(http.HandlerFunc(handler.GetCurrentUser))).Methods(http.MethodGet)
	r.Handle("/api/me", auth(http.HandlerFunc(handler.UpdateCurrentUser))).Methods(http.MethodPut)
	r.Handle("/api/user/{id}", auth(http.HandlerFunc(handler.GetUser))).Methods(http.MethodGet)
	r.HandleFunc("/api/user", handler.SearchUsers).Methods(http.MethodGet)

	r.Handle("/api/item", auth(http.HandlerFunc(handler.CreateItem))).Methods(http.MethodPut)
	r.HandleFunc("/api/item", handler.SearchItems).Methods(http.MethodGet)
	r.HandleFunc("/api/item/{id}", handler.GetItem).Methods(http.MethodGet)
	r.Handle("/api/item/{id}", auth(http.HandlerFunc(handler.UpdateItem))).Methods(http.MethodPut)
	r.Handle("/api/item/{id}", auth(http.HandlerFunc(handler.DeleteItem))).Methods(http.MethodDelete)

	// upload does its own token resolution after file validation
	r.HandleFunc("/api/item/{id}/image", handler.UploadItemImage).Methods(http.MethodPost)
	r.Handle("/api/item/{id}/image", auth(http.HandlerFunc(handler.RemoveItemImage))).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
