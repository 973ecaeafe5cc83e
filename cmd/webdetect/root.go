package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webdetect.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webdetect",
		Short: "Find where an image appears on the web",
		Long: `webdetect sends an image to the Google Cloud Vision web detection service
and reports pages with matching images, full and partial matching images,
and web entities.

An image can be a web URL (http, https), a Google Cloud Storage URI (gs://)
or a path to a local file.

Credentials are taken from --credentials, --api-key, the configuration file
or the GOOGLE_APPLICATION_CREDENTIALS environment variable, in that order.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
