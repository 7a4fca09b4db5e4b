package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"dysk-plikow/internal/config"
	"dysk-plikow/internal/database"
	"dysk-plikow/internal/storage"
	"dysk-plikow/internal/websocket"

	"github.com/jaevor/go-nanoid"
)

type Server struct {
	config  *config.Config
	store   *database.PostgresStore
	storage storage.BlobStorage
	wsHub   *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.PostgresStore, storage storage.BlobStorage, wsHub *websocket.Hub) *Server {
	return &Server{
		config:  cfg,
		store:   store,
		storage: storage,
		wsHub:   wsHub,
	}
}

func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.GetPool().Ping(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

// generateUniqueID losuje 21-znakowy nanoid i sprawdza kolizję w bazie.
func (s *Server) generateUniqueID(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	maxRetries := 10

	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		id := generateID()
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check for id existence: %w", err)
		}
		if !taken {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}

// publishChange dopisuje zdarzenie do dziennika i wypycha je do klientów
// właściciela. Błąd dziennika nie przerywa żądania - operacja już się udała.
func (s *Server) publishChange(ctx context.Context, userID int64, eventType string, payload interface{}) {
	if err := s.store.LogEvent(ctx, userID, eventType, payload); err != nil {
		log.Printf("WARN: failed to journal event %s for user %d: %v", eventType, userID, err)
	}
	if s.wsHub != nil {
		s.wsHub.PublishEvent(userID, websocket.ChangeEvent{EventType: eventType, Payload: payload})
	}
}
