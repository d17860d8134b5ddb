package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-locator/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geo-locator",
	Short: "Generate geo-targeted business location datasets",
	Long: "Samples coordinates on concentric rings around a center point, reverse-geocodes each to a city/state, " +
		"rotates keyword, business name, and description content across them, and exports the dataset.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
