// Package model defines the data structures shared by the webdetect packages.
//
// This package contains the following main types:
//   - Source: The resolved image reference, either a RemoteReference or LocalBytes
//   - Result: The flattened web detection result with its four ordered lists
//   - WebPage, WebImage, WebEntity: The records held by a Result
//
// Models live in their own package so that the resolver, the annotation
// client, the report writers and the HTTP server can share them without
// import cycles.
package model
