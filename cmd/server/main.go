package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/campaign-tracker/internal/analytics"
	"github.com/ignite/campaign-tracker/internal/api"
	"github.com/ignite/campaign-tracker/internal/config"
	"github.com/ignite/campaign-tracker/internal/sender"
	"github.com/ignite/campaign-tracker/internal/store"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies that the target port is not already in use,
// so a stale process doesn't silently shadow this one.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	// Store: Postgres when configured, in-memory otherwise.
	var st store.Store
	var memWatcher analytics.Watcher
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		st = store.NewPostgres(db)
		log.Println("[store] using Postgres")
	} else {
		mem := store.NewMemory()
		st = mem
		memWatcher = mem
		log.Println("[store] using in-memory store (no DATABASE_URL set)")
	}

	// Redis wires cross-process change notification for the dashboard.
	// Without it the collector falls back to its recompute ticker (or the
	// memory store's in-process watcher).
	var watcher analytics.Watcher = memWatcher
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		notifier := store.NewNotifier(st, rdb)
		st = notifier
		watcher = notifier
		log.Printf("[store] change notifications via Redis at %s", cfg.Redis.Addr)
	}

	var snd sender.Sender
	switch cfg.Sender.Provider {
	case "ses":
		snd, err = sender.NewSESSender(cfg.SES.AccessKey, cfg.SES.SecretKey, cfg.SES.Region)
		if err != nil {
			log.Fatalf("Failed to initialize SES sender: %v", err)
		}
	default:
		snd = sender.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.BaseURL)
	}
	log.Printf("[sender] provider: %s (from %s)", cfg.Sender.Provider, cfg.Sender.FromEmail)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := analytics.NewCollector(st, watcher, cfg.Analytics.Interval())
	go collector.Start(ctx)

	handlers := api.NewHandlers(st, snd, collector, cfg.Sender.FromEmail, cfg.Sender.FromName)
	server := api.NewServer(config.ServerConfig{Host: host, Port: port}, handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		log.Printf("Campaign tracker listening on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
