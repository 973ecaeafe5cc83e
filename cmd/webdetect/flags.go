package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/webdetect/internal/annotator"
	"github.com/nao1215/webdetect/internal/config"
	"github.com/nao1215/webdetect/internal/log"
)

// addClientFlags registers the flags shared by every command that talks to
// Cloud Vision.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webdetect in current or home directory)")
	cmd.Flags().String("credentials", "",
		"Path to a service account JSON key (default: $"+config.CredentialsEnvVar+")")
	cmd.Flags().String("api-key", "",
		"Google API key, used when no credentials file is set")
	cmd.Flags().String("endpoint", "",
		"Cloud Vision endpoint override (host:port)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file, cobra flags
// and the environment. Flags win over the file, the file wins over the
// environment.
func buildConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config must exist; otherwise a missing file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyStringFlag(cmd, "credentials", &cfg.CredentialsFile); err != nil {
		return nil, err
	}
	if err := applyStringFlag(cmd, "api-key", &cfg.APIKey); err != nil {
		return nil, err
	}
	if err := applyStringFlag(cmd, "endpoint", &cfg.Endpoint); err != nil {
		return nil, err
	}

	// An explicit --api-key replaces a key file set only in the config file.
	if flagChanged(cmd, "api-key") && !flagChanged(cmd, "credentials") {
		cfg.CredentialsFile = ""
	}

	cfg.ApplyEnv(getenv)

	return cfg, nil
}

// flagChanged reports whether the user set the named flag explicitly.
func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

// applyStringFlag copies a flag into dst when the user set it explicitly.
// Flags that the command does not define are ignored.
func applyStringFlag(cmd *cobra.Command, name string, dst *string) error {
	if !flagChanged(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// setupLogger creates a secure structured logger on w.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// annotatorOptions converts the configuration into client options.
func annotatorOptions(cfg *config.Config, logger *slog.Logger) annotator.Options {
	return annotator.Options{
		CredentialsFile: cfg.CredentialsFile,
		APIKey:          cfg.APIKey,
		Endpoint:        cfg.Endpoint,
		Logger:          logger,
	}
}

// checkCredentialsFile reports a missing credentials file before the client
// library does, with a clearer message.
func checkCredentialsFile(cfg *config.Config) error {
	if cfg.CredentialsFile == "" {
		return nil
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("credentials file not found: %s", cfg.CredentialsFile)
		}
		return fmt.Errorf("failed to access credentials file: %w", err)
	}
	return nil
}
