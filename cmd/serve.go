package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
	"github.com/wskoly/virtual-tryon/internal/database/mock"
	"github.com/wskoly/virtual-tryon/internal/database/postgres"
	"github.com/wskoly/virtual-tryon/internal/seed"
	"github.com/wskoly/virtual-tryon/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog web server",
	Long: `Start the accessory catalog web server.
The server exposes the model catalog and upload API the try-on viewer
consumes, and serves the uploaded model files and thumbnails.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
}

// openRepository connects to PostgreSQL when DATABASE_URL is set, otherwise
// falls back to the in-memory repository for local development.
func openRepository(cfg *config.Config) (database.Repository, func(), error) {
	if cfg.Database.URL == "" {
		fmt.Println("DATABASE_URL not set, using in-memory storage")
		return mock.NewRepository(), func() {}, nil
	}

	fmt.Println("Connecting to PostgreSQL database...")
	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	closeFn := func() {
		if err := pool.Close(); err != nil {
			fmt.Printf("Error closing database: %v\n", err)
		}
	}
	return postgres.NewRepository(pool), closeFn, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if port := mustGetInt(cmd, "port"); port != 0 {
		cfg.Server.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Server.Host = host
	}

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// In-memory storage starts empty every run, so install the default
	// catalog to keep the viewer usable without a database.
	if cfg.Database.URL == "" {
		if err := seed.Run(cmd.Context(), repo, cfg); err != nil {
			return fmt.Errorf("seeding in-memory catalog: %w", err)
		}
	}

	server := web.NewServer(cfg, repo)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Virtual Try-On server on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
