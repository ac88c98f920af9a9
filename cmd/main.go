package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth_service/internal/handlers"
	"auth_service/internal/logger"
	"auth_service/internal/repository"
	"auth_service/internal/repository/db"
	"auth_service/internal/server"
	"auth_service/internal/service"

	"github.com/spf13/viper"
)

const defaultTokenTTL = time.Hour

var errSigningKeyMissing = errors.New("auth.signing_key is not set")

func main() {
	// load config.yml first so the log level can come from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// the signing key is loaded exactly once here and injected; nothing else
	// reads it
	tokens, err := newTokenCodec()
	if err != nil {
		log.Fatalw("failed to configure token codec", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, tokens)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "users.db")
		dbPath = "users.db"
	}
	return db.InitDB(dbPath)
}

// newTokenCodec builds the codec from startup configuration. An absent
// signing key is a boot failure, not a runtime fallback.
func newTokenCodec() (*service.TokenCodec, error) {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		return nil, errSigningKeyMissing
	}
	ttl := viper.GetDuration("auth.token_ttl")
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return service.NewTokenCodec([]byte(key), ttl), nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "3000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
