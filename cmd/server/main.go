package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"dysk-plikow/internal/api"
	"dysk-plikow/internal/config"
	"dysk-plikow/internal/database"
	"dysk-plikow/internal/storage"
	"dysk-plikow/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	blobStorage, err := buildStorage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Nie można zainicjować magazynu plików: %v", err)
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool)
	server := api.NewServer(cfg, store, blobStorage, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)

	if !cfg.Production {
		// W developmencie frontend chodzi na innym porcie
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", server.ServeWsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", server.RegisterHandler)
		r.Post("/auth/login", server.LoginHandler)
		r.Post("/auth/refresh", server.RefreshTokenHandler)
		r.Post("/auth/logout", server.LogoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)

			r.Get("/upload", server.ListRootHandler)
			r.Post("/upload", server.UploadFileHandler)
			r.Get("/upload/{fileId}", server.DownloadFileHandler)
			r.Delete("/upload/{fileId}", server.DeleteFileHandler)

			r.Post("/folders", server.CreateFolderHandler)
			r.Get("/folders/{folderId}", server.GetFolderContentsHandler)
			r.Delete("/folders/{folderId}", server.DeleteFolderHandler)

			r.Get("/sessions", server.ListSessionsHandler)
			r.Post("/sessions/terminate_all", server.TerminateAllSessionsHandler)

			r.Get("/events", server.GetEventsHandler)
		})
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Uruchamianie serwera na porcie %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (storage.BlobStorage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		log.Printf("Pliki będą przechowywane w S3: %s/%s", cfg.Storage.S3.Endpoint, cfg.Storage.S3.Bucket)
		return storage.NewS3Storage(ctx,
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Region,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.AccessKey,
			cfg.Storage.S3.SecretKey,
		)
	case "local", "":
		log.Printf("Pliki będą przechowywane w: %s", cfg.Storage.Path)
		return storage.NewLocalStorage(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("nieznany backend magazynu: %q", cfg.Storage.Backend)
	}
}
