package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/webdetect/internal/annotator"
	"github.com/nao1215/webdetect/internal/config"
	"github.com/nao1215/webdetect/internal/pipeline"
	"github.com/nao1215/webdetect/internal/server"
	"github.com/nao1215/webdetect/internal/source"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve web detection over HTTP",
		Long: `Serve starts an HTTP server with a single route:

  POST /annotate   {"image_path": "<web URI, gs:// URI or local path>"}

It answers 200 with the JSON report, 400 when image_path is missing or empty
and 500 with {"error": "..."} for any other failure.

Local paths are read from the server's file system.

Examples:
  # Listen on the default address
  webdetect serve

  # Listen on all interfaces, port 8080, with JSON logs
  webdetect serve -a 0.0.0.0:8080 --log-json

  curl -s -X POST localhost:5000/annotate -d '{"image_path": "gs://bucket/cat.jpg"}'`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addClientFlags(cmd)

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"Listen address in host:port format")
	cmd.Flags().Duration("read-header-timeout", config.DefaultReadHeaderTimeout,
		"Maximum time to read request headers")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout,
		"Maximum time to wait for in-flight requests on shutdown")
	cmd.Flags().Bool("log-json", false,
		"Write logs as JSON lines")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := checkCredentialsFile(cfg); err != nil {
		return err
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, logJSON)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := annotator.New(ctx, annotatorOptions(cfg, logger))
	if err != nil {
		return err
	}
	defer client.Close()

	p := pipeline.NewWebDetection(source.NewResolver(), client, pipeline.WithLogger(logger))
	srv := server.New(p, server.WithLogger(logger))

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", cfg.ListenAddr)

	return srv.ListenAndServe(ctx, cfg.ListenAddr, cfg.ReadHeaderTimeout, cfg.ShutdownTimeout)
}

// buildServeConfig builds the shared configuration and adds the server flags.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd, os.Getenv)
	if err != nil {
		return nil, err
	}

	if err := applyStringFlag(cmd, "addr", &cfg.ListenAddr); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("read-header-timeout") {
		cfg.ReadHeaderTimeout, err = cmd.Flags().GetDuration("read-header-timeout")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("shutdown-timeout") {
		cfg.ShutdownTimeout, err = cmd.Flags().GetDuration("shutdown-timeout")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
