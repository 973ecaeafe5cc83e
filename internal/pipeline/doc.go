// Package pipeline runs an image reference through the web detection steps.
//
// The standard pipeline built by NewWebDetection has three steps:
//   - validate: rejects an empty reference (KindValidation)
//   - resolve: classifies the reference and reads local files (KindIO)
//   - detect: performs the remote web detection call (KindRemote)
//
// Every failure is returned as an *Error carrying its Kind, so the delivery
// shells decide how to present it (exit status, HTTP status code) without
// inspecting messages. A failure discards everything computed so far.
package pipeline
