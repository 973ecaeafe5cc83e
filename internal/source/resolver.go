package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF header sniffing
	_ "image/jpeg" // JPEG header sniffing
	_ "image/png"  // PNG header sniffing
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP header sniffing
	_ "golang.org/x/image/tiff" // TIFF header sniffing
	_ "golang.org/x/image/webp" // WEBP header sniffing

	"github.com/nao1215/webdetect/internal/model"
)

// remotePrefixes are the prefixes that mark a reference as remote.
// "http" covers both http:// and https://.
var remotePrefixes = []string{"http", "gs:"}

// ReadFileFunc reads the entire file at path.
type ReadFileFunc func(path string) ([]byte, error)

// Resolver turns image references into model.Source values.
type Resolver struct {
	readFile ReadFileFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReadFile replaces the function used to read local files.
func WithReadFile(fn ReadFileFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.readFile = fn
		}
	}
}

// NewResolver creates a Resolver that reads local files with os.ReadFile
// unless configured otherwise.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies ref and, for local paths, reads the file.
// A read failure is returned wrapped; the original error stays reachable
// through errors.Is (e.g. fs.ErrNotExist).
func (r *Resolver) Resolve(ref string) (model.Source, error) {
	if IsRemote(ref) {
		return model.RemoteReference{URI: ref}, nil
	}

	content, err := r.readFile(ref) //nolint:gosec // caller-supplied image path
	if err != nil {
		return nil, fmt.Errorf("failed to read image %q: %w", ref, err)
	}

	return model.LocalBytes{
		Path:    ref,
		Content: content,
		Format:  SniffFormat(content),
	}, nil
}

// Resolve classifies ref using a default Resolver.
func Resolve(ref string) (model.Source, error) {
	return NewResolver().Resolve(ref)
}

// IsRemote reports whether ref is handed to the remote service as a URI.
func IsRemote(ref string) bool {
	for _, prefix := range remotePrefixes {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}

// SniffFormat returns the image format name registered with the image
// package that matches the header of content, or "" if none does.
func SniffFormat(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	return format
}
