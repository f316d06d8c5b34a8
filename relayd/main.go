// Command relayd is a self-hostable JSON document relay for duoledger sync
// sessions. It speaks the same three-endpoint surface as the public bin the
// CLI defaults to, so pointing -relay-url at a relayd instance keeps ledger
// documents on infrastructure you control.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second

	defaultPort = "8080"

	envPort           = "RELAYD_PORT"
	envDatabaseDSN    = "RELAYD_DATABASE_DSN"
	envAllowedOrigins = "RELAYD_ALLOWED_ORIGINS"
)

type config struct {
	Port           string
	DatabaseDSN    string
	AllowedOrigins []string
}

// parseFlags resolves configuration from flags first, environment second.
func parseFlags() *config {
	cfg := &config{}
	var origins string

	flag.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Port to listen on (env: %s, default: %s)", envPort, defaultPort))
	flag.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("PostgreSQL connection string; empty keeps documents in memory (env: %s)", envDatabaseDSN))
	flag.StringVar(&origins, "allowed-origins", "",
		fmt.Sprintf("Comma-separated CORS origins, * for any (env: %s)", envAllowedOrigins))
	flag.Parse()

	if cfg.Port == "" {
		cfg.Port = getEnv(envPort, defaultPort)
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = getEnv(envDatabaseDSN, "")
	}
	if origins == "" {
		origins = getEnv(envAllowedOrigins, "*")
	}
	cfg.AllowedOrigins = strings.Split(origins, ",")
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	if err := run(); err != nil {
		log.Printf("relayd failed: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := parseFlags()

	var store DocumentStore
	if cfg.DatabaseDSN != "" {
		pg, err := newPGStore(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		store = pg
		log.Println("documents persisted in PostgreSQL")
	} else {
		store = newMemoryStore()
		log.Println("documents held in memory, lost on restart")
	}
	defer store.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(store, cfg.AllowedOrigins),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("relayd listening on %s", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
