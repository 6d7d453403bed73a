package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wskoly/virtual-tryon/internal/catalog"
	"github.com/wskoly/virtual-tryon/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch and print the accessory catalog",
	Long: `Fetch the model catalog from the configured server and print it
grouped by category. Useful for checking what the viewer would see.
With --fallback the built-in catalog is printed instead.`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().Bool("fallback", false, "Print the built-in fallback catalog")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var models catalog.Catalog

	if mustGetBool(cmd, "fallback") {
		models = catalog.Fallback()
	} else {
		cfg := config.Load()
		client, err := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Timeout)
		if err != nil {
			return fmt.Errorf("creating catalog client: %w", err)
		}
		models, err = client.FetchModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}
	}

	for _, category := range models.Categories() {
		fmt.Printf("%s:\n", category)
		for _, d := range models[category] {
			fmt.Printf("  %-20s %-20s anchor=%-4d scale=%.2f  %s\n",
				d.ID, d.Name, d.AnchorIndex, d.Scale[0], d.AssetPath())
		}
	}
	return nil
}
