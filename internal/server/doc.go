// Package server exposes web detection over HTTP.
//
// The only route is POST /annotate with a body of {"image_path": "..."}.
// A missing or empty image_path answers 400, any other failure 500, and
// success 200 with the same JSON payload the CLI prints with --json:
//
//	{
//	  "pages_with_matching_images": [{"url": "..."}],
//	  "full_matching_images": [{"url": "..."}],
//	  "partial_matching_images": [{"url": "..."}],
//	  "web_entities": [{"score": 0.87, "description": "..."}]
//	}
//
// Errors are returned as {"error": "<message>"}. Every response is JSON and
// carries an X-Request-Id header.
package server
