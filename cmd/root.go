package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "virtual-tryon",
	Short: "Virtual try-on accessory catalog server",
	Long: `Virtual Try-On serves the 3D accessory catalog behind the browser-based
AR try-on viewer. It stores uploaded .glb/.gltf accessory models grouped
into categories (hats, glasses) and exposes the catalog, upload, and
admin API the viewer and admin panel consume.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
