package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4/internal/config"
	"github.com/iamasit07/connect4/internal/repository/memory"
	"github.com/iamasit07/connect4/internal/repository/redis"
	"github.com/iamasit07/connect4/internal/service/cleanup"
	"github.com/iamasit07/connect4/internal/service/game"
	transportHttp "github.com/iamasit07/connect4/internal/transport/http"
	"github.com/iamasit07/connect4/internal/transport/websocket"
	"github.com/iamasit07/connect4/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Session store: Redis when reachable, otherwise process memory.
	var store game.Store
	runSweeper := true
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("Falling back to in-memory game store")
		} else {
			defer client.Close()
			store = redis.NewStore(client, cfg.SessionTTL)
			// Keys carry their own TTL.
			runSweeper = false
		}
	}
	if store == nil {
		store = memory.NewStore()
	}

	// 2. Services
	gameService, err := game.NewService(store, game.Options{
		Width:      cfg.BoardWidth,
		Height:     cfg.BoardHeight,
		Palette:    cfg.PlayerColors,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game settings")
	}

	// 3. Background workers
	var cleanupDone <-chan struct{}
	if runSweeper {
		cleanupDone = cleanup.NewWorker(gameService, cfg.CleanupInterval).Start(ctx)
	}

	// 4. Handlers
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(gameService, connManager, websocket.Options{
		InputCooldown:  cfg.InputCooldown,
		AnnounceDelay:  cfg.AnnounceDelay,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	gameHandler := transportHttp.NewGameHandler(gameService, transportHttp.ClientConfig{
		Width:           cfg.BoardWidth,
		Height:          cfg.BoardHeight,
		Palette:         gameService.Palette(),
		InputCooldownMs: cfg.InputCooldown.Milliseconds(),
		AnnounceDelayMs: cfg.AnnounceDelay.Milliseconds(),
	})

	router := transportHttp.NewRouter(gameHandler, transportHttp.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
		WebSocket:      wsHandler.HandleWebSocket,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Int("width", cfg.BoardWidth).Int("height", cfg.BoardHeight).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connManager.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if cleanupDone != nil {
		<-cleanupDone
	}

	log.Info().Msg("Server exited gracefully")
}
