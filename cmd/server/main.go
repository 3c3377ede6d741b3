package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emberfall/server/internal/auth"
	"github.com/emberfall/server/internal/config"
	"github.com/emberfall/server/internal/handler"
	"github.com/emberfall/server/internal/logger"
	"github.com/emberfall/server/internal/match"
	"github.com/emberfall/server/internal/middleware"
	"github.com/emberfall/server/internal/room"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().
		Dur("turnTimer", cfg.TurnTimer).
		Dur("reconnectWindow", cfg.ReconnectWindow).
		Msg("Config loaded")

	jwtMgr := auth.NewJWTManager(cfg.TokenSecret)
	rooms := room.NewManager(match.Config{
		TurnTimer:       cfg.TurnTimer,
		ReconnectWindow: cfg.ReconnectWindow,
		IdleTimeout:     cfg.IdleTimeout,
	}, jwtMgr, log.Logger)

	mux := handler.NewRouter(rooms, jwtMgr)
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS(cfg.CORSOrigin), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rooms.Reap(ctx, cfg.RoomReapEvery)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()
	rooms.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
