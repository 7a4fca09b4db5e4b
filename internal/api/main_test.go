package api

import (
	"context"
	"log"
	"os"
	"testing"

	"dysk-plikow/internal/auth"
	"dysk-plikow/internal/config"
	"dysk-plikow/internal/database"
	"dysk-plikow/internal/models"
	"dysk-plikow/internal/storage"
	"dysk-plikow/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testServer *Server
var testStorageDir string
var testUserClaims *auth.AppClaims

// Drugi użytkownik do scenariuszy z cudzymi zasobami
var otherUserClaims *auth.AppClaims

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	testStorageDir, err = os.MkdirTemp("", "api-storage-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}
	defer os.RemoveAll(testStorageDir)

	localStorage, err := storage.NewLocalStorage(testStorageDir)
	if err != nil {
		log.Fatalf("Could not create local storage: %s", err)
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(pool)
	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: "api_test_secret"},
		Upload: config.UploadConfig{MaxSizeMB: 5},
	}
	testServer = NewServer(cfg, store, localStorage, wsHub)

	testUserClaims = seedUser(ctx, store, cfg, "api_test_user@example.com")
	otherUserClaims = seedUser(ctx, store, cfg, "api_other_user@example.com")

	os.Exit(m.Run())
}

func seedUserForTest(t *testing.T, email string) *auth.AppClaims {
	t.Helper()
	return seedUser(context.Background(), testServer.store, testServer.config, email)
}

func seedUser(ctx context.Context, store *database.PostgresStore, cfg *config.Config, email string) *auth.AppClaims {
	hashedPassword, _ := auth.HashPassword("password")
	user, err := store.CreateUser(ctx, database.CreateUserParams{
		Email:        email,
		DisplayName:  "API Test User",
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Fatalf("Could not seed user %s: %s", email, err)
	}

	token, err := auth.GenerateJWT(&models.User{ID: user.ID, Email: user.Email}, cfg.JWT.Secret)
	if err != nil {
		log.Fatalf("Could not generate token: %s", err)
	}
	claims, err := auth.VerifyJWT(token, cfg.JWT.Secret)
	if err != nil {
		log.Fatalf("Could not verify token: %s", err)
	}
	return claims
}
