// File: app/app.go
package app

import (
	"context"
	"net/http"
	"office-graph-api/config"
	"office-graph-api/db"
	"office-graph-api/document"
	"office-graph-api/handler"
	"office-graph-api/logger"
	"office-graph-api/repository"
	"office-graph-api/router"
	"office-graph-api/service"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

// App holds the wired router together with the pieces tests reach into.
type App struct {
	Router    *mux.Router
	Auth      *service.AuthService
	Tokens    *repository.TokenRepository
	Documents *service.DocumentService
}

// NewApp wires every layer from cfg. Login state goes to states, so the
// caller decides between the in-memory and Redis implementations.
func NewApp(cfg *config.Config, states repository.IStateRepository) *App {
	httpClient := &http.Client{Timeout: cfg.HTTP.ClientTimeout}

	// Layers for sign-in and the token lifecycle
	tokens := repository.NewTokenRepository()
	provider := service.NewMicrosoftProvider(cfg.Microsoft, httpClient)
	authService := service.NewAuthService(provider, tokens, states, service.AuthOptions{
		JWTSecret:  cfg.JWT.SecretKey,
		SessionTTL: cfg.JWT.TTL,
		ExpirySkew: cfg.Token.ExpirySkew,
	})
	authHandler := handler.NewAuthHandler(authService)

	// Layers for Microsoft Graph
	graph := service.NewGraphClient(cfg.Graph.BaseURL, httpClient, authService)
	mailHandler := handler.NewMailHandler(service.NewMailService(graph))
	driveService := service.NewDriveService(graph)

	// Layers for generation
	textService := service.NewTextService(cfg.OpenAI, httpClient)
	textHandler := handler.NewTextHandler(textService)
	documentService := service.NewDocumentService(cfg.Documents.OutputDir, document.Emitters(), textService)
	documentHandler := handler.NewDocumentHandler(documentService, driveService, cfg.Server.BaseURL)

	r := router.NewRouter(authHandler, mailHandler, textHandler, documentHandler, authService)

	return &App{
		Router:    r,
		Auth:      authService,
		Tokens:    tokens,
		Documents: documentService,
	}
}

func Run() {
	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Configuration error: %v", err)
	}
	cfg := &config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	var states repository.IStateRepository = repository.NewMemoryStateRepository()
	if cfg.Redis.Enabled {
		redisClient, err := db.ConnectRedis(context.Background(), cfg.Redis)
		if err != nil {
			logger.Log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redisClient.Close()
		states = repository.NewRedisStateRepository(redisClient)
	}

	if err := os.MkdirAll(cfg.Documents.OutputDir, 0o755); err != nil {
		logger.Log.Fatalf("Error creating output directory %s: %v", cfg.Documents.OutputDir, err)
	}

	a := NewApp(cfg, states)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
