// Package seed installs the default accessory categories and models and
// copies their bundled asset files into the serving directories.
package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/wskoly/virtual-tryon/internal/config"
	"github.com/wskoly/virtual-tryon/internal/database"
)

func intPtr(n int) *int { return &n }

// defaultCategories are created on first run.
func defaultCategories() []database.Category {
	return []database.Category{
		{
			Name:        "hats",
			Description: "Head accessories like hats, caps, and headwear",
			AnchorIndex: 10,
		},
		{
			Name:        "glasses",
			Description: "Eye accessories like glasses, sunglasses, and eyewear",
			AnchorIndex: 168,
		},
	}
}

// defaultModels returns the starter accessories, keyed off the created
// category ids.
func defaultModels(hatsID, glassesID int64) []database.Model {
	return []database.Model{
		{
			UUID:             "hat1-default",
			Name:             "Wizard Hat",
			Description:      "A magical wizard hat perfect for spellcasting",
			Filename:         "hat.glb",
			OriginalFilename: "hat.glb",
			FileType:         ".glb",
			ThumbnailPath:    "thumbnails/hat.png",
			CategoryID:       hatsID,
			Position:         [3]float64{0, -0.2, -0.7},
			Rotation:         [3]float64{0, -90, 0},
			Scale:            [3]float64{0.27, 0.27, 0.27},
			AnchorIndex:      intPtr(10),
			IsActive:         true,
		},
		{
			UUID:             "hat2-default",
			Name:             "Cowboy Hat",
			Description:      "Western style cowboy hat with authentic design",
			Filename:         "cowboy_hat_free.glb",
			OriginalFilename: "cowboy_hat_free.glb",
			FileType:         ".glb",
			ThumbnailPath:    "thumbnails/cowboy_hat_free.png",
			CategoryID:       hatsID,
			Position:         [3]float64{0, 0, -0.75},
			Rotation:         [3]float64{0, 0, 0},
			Scale:            [3]float64{0.07, 0.07, 0.07},
			AnchorIndex:      intPtr(10),
			IsActive:         true,
		},
		{
			UUID:             "glasses1-default",
			Name:             "Eyewear Specs",
			Description:      "Professional eyewear with modern frame design",
			Filename:         "eyewear_specs.glb",
			OriginalFilename: "eyewear_specs.glb",
			FileType:         ".glb",
			ThumbnailPath:    "thumbnails/eyewear_specs.png",
			CategoryID:       glassesID,
			Position:         [3]float64{-0.52, -0.25, -1.25},
			Rotation:         [3]float64{0, 90, 0},
			Scale:            [3]float64{0.35, 0.35, 0.35},
			AnchorIndex:      intPtr(168),
			IsActive:         true,
		},
		{
			UUID:             "glasses2-default",
			Name:             "Wooden Sunglasses",
			Description:      "Eco-friendly wooden sunglasses with UV protection",
			Filename:         "wooden_sunglasses.glb",
			OriginalFilename: "wooden_sunglasses.glb",
			FileType:         ".glb",
			ThumbnailPath:    "thumbnails/wooden_sunglasses.png",
			CategoryID:       glassesID,
			Position:         [3]float64{0, -0.05, 0},
			Rotation:         [3]float64{5, 0, 0},
			Scale:            [3]float64{0.23, 0.23, 0.23},
			AnchorIndex:      intPtr(168),
			IsActive:         true,
		},
	}
}

// Run seeds the repository with the default catalog if it is empty and
// copies bundled assets into the serving directories. Safe to re-run.
func Run(ctx context.Context, repo database.Repository, cfg *config.Config) error {
	hatsID, glassesID, created, err := ensureCategories(ctx, repo)
	if err != nil {
		return err
	}
	if created {
		log.Println("Added default categories")
	}

	existing, err := repo.ListModels(ctx, database.ListOptions{})
	if err != nil {
		return fmt.Errorf("listing models: %w", err)
	}
	if len(existing) > 0 {
		log.Println("Models already present, skipping model seed")
		return nil
	}

	if err := copyDefaultAssets(cfg); err != nil {
		return err
	}

	for _, m := range defaultModels(hatsID, glassesID) {
		model := m
		model.FileSize = fileSize(filepath.Join(cfg.Storage.ModelsDir, model.Filename))
		if err := repo.CreateModel(ctx, &model); err != nil {
			return fmt.Errorf("creating model %s: %w", model.UUID, err)
		}
	}
	log.Println("Added default models")
	return nil
}

// ensureCategories creates the default categories when the table is empty
// and returns the hats and glasses ids either way.
func ensureCategories(ctx context.Context, repo database.Repository) (hatsID, glassesID int64, created bool, err error) {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return 0, 0, false, fmt.Errorf("listing categories: %w", err)
	}
	if len(existing) == 0 {
		for _, c := range defaultCategories() {
			category := c
			if err := repo.CreateCategory(ctx, &category); err != nil {
				return 0, 0, false, fmt.Errorf("creating category %s: %w", category.Name, err)
			}
		}
		created = true
	}

	for _, name := range []string{"hats", "glasses"} {
		category, err := repo.GetCategoryByName(ctx, name)
		if err != nil || category == nil {
			return 0, 0, false, fmt.Errorf("category %s missing after seed: %w", name, err)
		}
		if name == "hats" {
			hatsID = category.ID
		} else {
			glassesID = category.ID
		}
	}
	return hatsID, glassesID, created, nil
}

// copyDefaultAssets copies bundled model and thumbnail files from the data
// directory. Missing source files are logged, not fatal: the catalog rows
// still point at the expected filenames.
func copyDefaultAssets(cfg *config.Config) error {
	if _, err := os.Stat(cfg.Storage.DataDir); os.IsNotExist(err) {
		log.Printf("Data folder %s not found, skipping asset copy", cfg.Storage.DataDir)
		return nil
	}

	type assetCopy struct{ src, dst string }
	var copies []assetCopy
	for _, m := range defaultModels(0, 0) {
		copies = append(copies, assetCopy{
			src: filepath.Join(cfg.Storage.DataDir, m.Filename),
			dst: filepath.Join(cfg.Storage.ModelsDir, m.Filename),
		})
		thumb := filepath.Base(m.ThumbnailPath)
		copies = append(copies, assetCopy{
			src: filepath.Join(cfg.Storage.DataDir, thumb),
			dst: filepath.Join(cfg.Storage.ThumbnailsDir, thumb),
		})
	}

	bar := progressbar.NewOptions(len(copies),
		progressbar.OptionSetDescription("Copying assets"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
	for _, c := range copies {
		if err := copyFile(c.src, c.dst); err != nil {
			log.Printf("could not copy %s: %v", filepath.Base(c.src), err)
		}
		bar.Add(1)
	}
	fmt.Println()
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // paths built from seed constants
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}
	out, err := os.Create(dst) //nolint:gosec // paths built from seed constants
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
