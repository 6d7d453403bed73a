package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default accessory catalog",
	Long: `Seed installs the default categories (hats, glasses) and starter
accessory models, and copies their bundled .glb files and thumbnails
into the serving directories. Re-running on a populated database is a
no-op.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return fmt.Errorf("seed requires DATABASE_URL: in-memory storage does not persist")
	}

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	if err := seed.Run(context.Background(), repo, cfg); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	fmt.Println("Seed complete")
	return nil
}
