package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "webdetect"

	// CredentialsEnvVar is the environment variable Google client libraries
	// use for the path of a service account key. It is read once at startup
	// and passed explicitly to the annotation client.
	CredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"

	// DefaultListenAddr is the address the HTTP server listens on.
	// Loopback only; bind to a public interface explicitly with --addr.
	DefaultListenAddr = "127.0.0.1:5000"

	// DefaultReadHeaderTimeout bounds how long the server waits for request
	// headers. It does not limit the remote annotation call.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests may run after a
	// shutdown signal before the server is closed.
	DefaultShutdownTimeout = 30 * time.Second
)

// Config holds all configuration options for webdetect.
// It is populated from the config file and CLI flags and passed through
// the application explicitly; nothing here is read from global state
// after startup.
type Config struct {
	// CredentialsFile is the path to a Google service account JSON key.
	CredentialsFile string

	// APIKey is a Google API key, used when no credentials file is set.
	APIKey string

	// Endpoint overrides the Cloud Vision endpoint ("host:port").
	// Empty means the public endpoint.
	Endpoint string

	// ListenAddr is the HTTP server listen address in "host:port" format.
	ListenAddr string

	// ReadHeaderTimeout is the HTTP server's read header timeout.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the default locations (see FindConfigFile).
	ConfigFilePath string

	// JSONReport enables JSON output instead of the text report.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of the text report.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddr:        DefaultListenAddr,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
	}
}

// ApplyFile overrides fields with the values set in the config file.
// Unset (zero) file values leave the current values untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Credentials != "" {
		c.CredentialsFile = f.Credentials
	}
	if f.APIKey != "" {
		c.APIKey = f.APIKey
	}
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.Listen != "" {
		c.ListenAddr = f.Listen
	}
	if f.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = f.ReadHeaderTimeout
	}
	if f.ShutdownTimeout != 0 {
		c.ShutdownTimeout = f.ShutdownTimeout
	}
}

// ApplyEnv fills in the credentials file from CredentialsEnvVar when
// neither a credentials file nor an API key is configured.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.CredentialsFile != "" || c.APIKey != "" {
		return
	}
	c.CredentialsFile = getenv(CredentialsEnvVar)
}

// XDGConfigDir returns the XDG config directory for webdetect.
// On Linux: ~/.config/webdetect
// On macOS: ~/Library/Application Support/webdetect
// On Windows: %APPDATA%\webdetect
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.ListenAddr == "" {
		return ErrEmptyListenAddr
	}

	if c.ReadHeaderTimeout <= 0 {
		return ErrInvalidReadHeaderTimeout
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}
