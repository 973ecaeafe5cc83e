package annotator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	"github.com/nao1215/webdetect/internal/model"
)

var (
	// ErrNilSource is returned by Detect when no source is given.
	ErrNilSource = errors.New("no image source")

	// ErrEmptyResponse is returned when the service answers a request
	// without any per-image response.
	ErrEmptyResponse = errors.New("empty response from vision service")
)

// Annotator runs web detection on a resolved image source.
type Annotator interface {
	Detect(ctx context.Context, src model.Source) (*model.Result, error)
}

// Options configures how a Client connects to Cloud Vision.
// Zero values fall back to the Google client library defaults
// (Application Default Credentials and the public endpoint).
type Options struct {
	// CredentialsFile is the path to a service account JSON key.
	CredentialsFile string

	// APIKey is an API key used instead of a credentials file.
	// When both are set, the credentials file wins.
	APIKey string

	// Endpoint overrides the Cloud Vision endpoint ("host:port").
	Endpoint string

	// ClientOptions are appended after the options derived from the fields
	// above, so they can override them.
	ClientOptions []option.ClientOption

	// Logger receives debug logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// clientOptions converts Options into Google API client options.
func (o Options) clientOptions() []option.ClientOption {
	var opts []option.ClientOption

	switch {
	case o.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile)) //nolint:staticcheck // file path comes from the operator's own config
	case o.APIKey != "":
		opts = append(opts, option.WithAPIKey(o.APIKey))
	}

	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}

	return append(opts, o.ClientOptions...)
}

// Client is an Annotator backed by the Cloud Vision gRPC API.
// It is safe for concurrent use.
type Client struct {
	vision *vision.ImageAnnotatorClient
	logger *slog.Logger
}

var _ Annotator = (*Client)(nil)

// New connects to Cloud Vision. The returned Client must be closed.
func New(ctx context.Context, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("creating vision client",
		"service_account_file_set", opts.CredentialsFile != "",
		"api_key_set", opts.APIKey != "",
		"endpoint", opts.Endpoint,
	)

	c, err := vision.NewImageAnnotatorClient(ctx, opts.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	return &Client{
		vision: c,
		logger: logger,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.vision.Close()
}

// Detect runs web detection on src and returns the flattened result.
func (c *Client) Detect(ctx context.Context, src model.Source) (*model.Result, error) {
	img, err := Image(src)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("requesting web detection", "source", src.Describe())

	web, err := c.detectWeb(ctx, img)
	if err != nil {
		return nil, err
	}

	result := FromProto(web)
	c.logger.Debug("web detection completed",
		"source", src.Describe(),
		"pages", len(result.PagesWithMatchingImages),
		"full_matches", len(result.FullMatchingImages),
		"partial_matches", len(result.PartialMatchingImages),
		"entities", len(result.WebEntities),
	)

	return result, nil
}

// detectWeb sends a single-image WEB_DETECTION request.
// An image-level error in the response is returned as a gRPC status error.
func (c *Client) detectWeb(ctx context.Context, img *visionpb.Image) (*visionpb.WebDetection, error) {
	res, err := c.vision.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: img,
			Features: []*visionpb.Feature{{
				Type: visionpb.Feature_WEB_DETECTION,
			}},
		}},
	})
	if err != nil {
		return nil, err
	}

	responses := res.GetResponses()
	if len(responses) == 0 {
		return nil, ErrEmptyResponse
	}
	if e := responses[0].GetError(); e != nil {
		return nil, status.ErrorProto(e)
	}
	return responses[0].GetWebDetection(), nil
}

// Image converts a resolved source into the Cloud Vision image message.
// Remote references are sent as an image URI; local bytes inline.
func Image(src model.Source) (*visionpb.Image, error) {
	switch s := src.(type) {
	case model.RemoteReference:
		return &visionpb.Image{Source: &visionpb.ImageSource{ImageUri: s.URI}}, nil
	case model.LocalBytes:
		return &visionpb.Image{Content: s.Content}, nil
	case nil:
		return nil, ErrNilSource
	default:
		return nil, fmt.Errorf("unsupported image source %T", src)
	}
}
