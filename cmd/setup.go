package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/quaver/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template and initializes
// the track cache database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		var err error
		if configPath, err = shared.ConfigFile(); err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	db, _, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Infof("setup complete for config: %v", configPath)
	r.writePlain("✓ Config ready: %s\n", configPath)
	r.writePlain("Set [library] root in the config, then run 'quaver scan'\n")
	return nil
}
