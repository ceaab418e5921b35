package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mehul/notes-app/backend/internal/auth"
	"github.com/mehul/notes-app/backend/internal/config"
	"github.com/mehul/notes-app/backend/internal/middleware"
	"github.com/mehul/notes-app/backend/internal/notes"
	"github.com/mehul/notes-app/backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.AccessTokenSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET is required")
	}

	// ── MongoDB ──────────────────────────────────────────────
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB)

	users := store.NewUserStore(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("users indexes: %v", err)
	}
	noteStore := store.NewNoteStore(db)
	if err := noteStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("notes indexes: %v", err)
	}

	// ── Tokens ───────────────────────────────────────────────
	tokens := auth.NewTokenManager([]byte(cfg.AccessTokenSecret), auth.DefaultTokenTTL)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(users, tokens)
	noteHandler := notes.NewHandler(noteStore)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Account routes (public)
	r.Post("/create-account", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/get-user", authHandler.Me)
		r.Post("/add-note", noteHandler.Add)
		r.Put("/edit-note/{noteId}", noteHandler.Edit)
		r.Put("/update-note-pinned/{noteId}", noteHandler.UpdatePinned)
		r.Get("/get-all-notes", noteHandler.List)
		r.Delete("/delete-note/{noteId}", noteHandler.Delete)
		r.Get("/search-notes", noteHandler.Search)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
