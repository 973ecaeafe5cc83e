// Package annotator wraps the Cloud Vision web detection call.
//
// A Client performs exactly one synchronous BatchAnnotateImages request per
// Detect call with the WEB_DETECTION feature and flattens the response into
// a model.Result. There is no retry and no timeout other than the one
// carried by the caller's context. Every failure of the remote call is
// returned as a single error value whose message is the remote message.
//
// Credentials are passed in explicitly through Options; the package never
// reads or writes process environment variables.
package annotator
