package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would start with, after the config file,
difficulty preset and variant rules were applied. Without a variant the
loaded base configuration is printed.

The output is a valid config file:

  match3 config > ~/.match3/configs/match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := gameConfig
	if len(args) > 0 {
		var err error
		if cfg, err = match3.VariantConfig(args[0]); err != nil {
			return err
		}
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
