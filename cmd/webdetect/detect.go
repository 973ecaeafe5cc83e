package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/webdetect/internal/annotator"
	"github.com/nao1215/webdetect/internal/config"
	"github.com/nao1215/webdetect/internal/model"
	"github.com/nao1215/webdetect/internal/pipeline"
	"github.com/nao1215/webdetect/internal/report"
	"github.com/nao1215/webdetect/internal/source"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <image_url>",
		Short: "Detect where an image appears on the web",
		Long: `Detect sends one image to the Cloud Vision web detection service and prints
the pages with matching images, full and partial matching images, and web
entities it reports.

image_url: The image to detect, can be web URI, Google Cloud Storage, or path to local file.

Examples:
  # Image on the web
  webdetect detect https://example.com/cat.jpg

  # Image in Google Cloud Storage
  webdetect detect gs://my-bucket/cat.jpg

  # Local file, JSON output
  webdetect detect --json ./cat.jpg

  # Markdown report written to a file
  webdetect detect -m -o reports/cat.md ./cat.jpg

  # Use a specific service account key
  webdetect detect --credentials key.json ./cat.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: runDetectCmd,
	}

	addClientFlags(cmd)

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runDetectCmd executes the detect command.
func runDetectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildDetectConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := checkCredentialsFile(cfg); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, false)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := annotator.New(ctx, annotatorOptions(cfg, logger))
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := runDetect(ctx, args[0], client, logger)
	if err != nil {
		return err
	}

	return outputReport(cfg, cmd.OutOrStdout(), result)
}

// buildDetectConfig builds the shared configuration and adds the report flags.
func buildDetectConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd, os.Getenv)
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runDetect runs the web detection pipeline for one image reference.
func runDetect(ctx context.Context, ref string, a annotator.Annotator, logger *slog.Logger) (*model.Result, error) {
	p := pipeline.NewWebDetection(source.NewResolver(), a, pipeline.WithLogger(logger))
	return p.Run(ctx, ref)
}

// newReportWriter returns the report writer selected by the configuration.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewTextWriter(w)
	}
}

// outputReport writes the result to the report file, or to stdout when
// no file is configured.
func outputReport(cfg *config.Config, stdout io.Writer, result *model.Result) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if _, err := newReportWriter(cfg, output).Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
