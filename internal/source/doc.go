// Package source classifies image references and loads local images.
//
// A reference that starts with "http" or "gs:" is a RemoteReference: the
// remote service fetches it and the local filesystem is never touched.
// Every other reference is a filesystem path whose entire content is read
// into a LocalBytes value.
package source
