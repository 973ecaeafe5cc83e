package model

import "fmt"

// Source is an image reference that has been classified by the resolver.
// It is a closed set: the only implementations are RemoteReference and
// LocalBytes. Callers switch over the concrete type:
//
//	switch s := src.(type) {
//	case model.RemoteReference:
//	    // s.URI
//	case model.LocalBytes:
//	    // s.Content
//	}
type Source interface {
	// Describe returns a short, log-safe description of the source.
	// It never includes the image content.
	Describe() string

	isSource()
}

// RemoteReference is an image the remote service fetches by itself,
// addressed by an http(s) URL or a Cloud Storage URI (gs://bucket/object).
type RemoteReference struct {
	// URI is the reference exactly as given by the caller.
	URI string
}

// Describe returns the URI.
func (r RemoteReference) Describe() string {
	return r.URI
}

func (RemoteReference) isSource() {}

// LocalBytes is an image read from the local filesystem.
// The content is sent inline with the request.
type LocalBytes struct {
	// Path is the filesystem path the content was read from.
	Path string

	// Content is the entire file content.
	Content []byte

	// Format is the image format sniffed from the content header
	// (e.g. "jpeg", "png", "webp"). Empty when the format is not recognised.
	// It is informational only; the remote service decides what it accepts.
	Format string
}

// Describe returns the path, size and sniffed format.
func (l LocalBytes) Describe() string {
	format := l.Format
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("%s (%d bytes, %s)", l.Path, len(l.Content), format)
}

func (LocalBytes) isSource() {}
