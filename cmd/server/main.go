// Command main is the entry point for the Inkwell API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/seed"
	"inkwell/internal/server"
	"inkwell/internal/storage"
	"inkwell/internal/store"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg.Env)

	// The namespace is the single shared resource; both stores write their
	// snapshots into it. An empty STORE_PATH keeps everything in memory.
	var ns storage.Namespace
	if cfg.StorePath == "" {
		ns = storage.NewMemory()
	} else {
		sqliteNS, err := storage.OpenSQLite(cfg.StorePath, logger)
		if err != nil {
			log.Fatalf("Failed to open store at %s: %v", cfg.StorePath, err)
		}
		defer sqliteNS.Close()
		ns = sqliteNS
	}

	ctx := context.Background()
	identity, err := store.NewIdentityStore(ctx, ns, logger)
	if err != nil {
		log.Fatalf("Failed to build identity store: %v", err)
	}
	content, err := store.NewContentStore(ctx, ns, identity, seed.Posts(), logger)
	if err != nil {
		log.Fatalf("Failed to build content store: %v", err)
	}

	srv := server.NewServer(cfg, identity, content, logger)

	app := fiber.New(fiber.Config{
		AppName:   "Inkwell API",
		BodyLimit: 10 * 1024 * 1024, // room for inline post images
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
