// Package main provides the entry point for the webdetect CLI.
//
// webdetect asks the Google Cloud Vision web detection service where an
// image appears on the web: pages that embed it, full and partial matches,
// and the entities the service associates with it.
//
// Usage:
//
//	webdetect detect <image_url>
//	webdetect serve --addr 127.0.0.1:5000
//
// See --help for all available options.
package main

// main is the entry point for webdetect.
func main() {
	Execute()
}
