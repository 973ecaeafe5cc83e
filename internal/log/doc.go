// Package log builds slog loggers that mask secrets before they reach the
// output.
//
// webdetect handles Google credentials: service account key files, API
// keys and the OAuth tokens the client library derives from them. The
// SecureHandler wraps any slog.Handler and replaces such values with
// MaskValue, whether they appear under a telling key ("api_key",
// "authorization") or only by their shape (an "AIza..." key, a JWT, a PEM
// private key). Masking applies in verbose mode too.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("client configured",
//	    "endpoint", endpoint, // kept
//	    "api_key", apiKey,    // masked
//	)
//
// NewSecureJSONLogger produces the same masking with JSON output.
package log
