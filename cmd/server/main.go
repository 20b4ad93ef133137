package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/laya-karavadi/connect-four/internal/config"
	"github.com/laya-karavadi/connect-four/internal/server"
	"github.com/laya-karavadi/connect-four/internal/store"
	transporthttp "github.com/laya-karavadi/connect-four/internal/transport/http"
	"github.com/laya-karavadi/connect-four/internal/transport/http/middleware"
	"github.com/laya-karavadi/connect-four/internal/transport/websocket"
	"github.com/laya-karavadi/connect-four/pkg/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Str("port", cfg.Port).Int("search_depth", cfg.SearchDepth).Msg("starting connect-four server")

	// Redis keeps games alive across restarts; without it the server
	// still runs on the in-memory store.
	var st store.Store
	var redisStore *store.RedisStore
	if cfg.RedisEnabled {
		if rs, ok := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL); ok {
			st = rs
			redisStore = rs
		}
	}
	if st == nil {
		log.Info().Msg("using in-memory session store")
		st = store.NewMemoryStore(cfg.SessionTTL)
	}

	sessions := server.NewSessionManager(st, cfg.SearchDepth, cfg.MaxSearchDepth)

	worker := server.NewCleanupWorker(sessions, cfg.CleanupInterval, cfg.SessionTTL)
	worker.Start()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	connections := websocket.NewConnectionManager()

	wsHandler := websocket.NewHandler(connections, sessions, tokens, cfg.AllowedOrigins)
	apiHandler := transporthttp.NewHandler(sessions, tokens, connections)

	router := mux.NewRouter()
	apiHandler.Register(router)
	router.HandleFunc("/ws", wsHandler.ServeWS)
	transporthttp.RegisterStatic(router, cfg.StaticDir)

	httpServer := &http.Server{
		Addr: ":" + cfg.Port,
		// CORS wraps the whole router so preflights are answered even
		// for method mismatches.
		Handler: middleware.EnableCORS(cfg.AllowedOrigins)(router),
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	worker.Stop()
	if redisStore != nil {
		redisStore.Close()
	}

	log.Info().Msg("server exited")
}
