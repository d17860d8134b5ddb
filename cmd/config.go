package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/geo-locator/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long:  "Prints defaults merged with config.yaml, .env, and environment overrides. The API key is redacted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := marshalConfig(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func marshalConfig(c *config.Config) ([]byte, error) {
	redacted := *c
	if redacted.Geocode.APIKey != "" {
		redacted.Geocode.APIKey = "REDACTED"
	}
	b, err := yaml.Marshal(&redacted)
	if err != nil {
		return nil, eris.Wrap(err, "config: marshal yaml")
	}
	return b, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
