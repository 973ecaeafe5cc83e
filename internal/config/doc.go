// Package config provides configuration structures and utilities for webdetect.
// It defines the Cloud Vision connection settings, the HTTP server settings
// and report preferences, and loads them from an optional YAML file.
package config
