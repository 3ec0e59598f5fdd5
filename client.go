package klingo

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Client is the entry point to the Kling AI API. Each endpoint family is
// exposed as a service field; all of them share one pooled transport and
// one retry policy. Construct it explicitly and pass it around; a Client
// is safe for concurrent use.
type Client struct {
	config    *Config
	transport *transport

	TextToVideo       *TextToVideoService
	ImageToVideo      *ImageToVideoService
	MultiImageToVideo *MultiImageToVideoService
	VideoExtension    *VideoExtensionService
	ImageGeneration   *ImageGenerationService
	VirtualTryOn      *VirtualTryOnService
	LipSync           *LipSyncService
	VideoEffects      *VideoEffectsService
	Account           *AccountService
}

type clientOptions struct {
	httpClient *http.Client
	retry      *RetryPolicy
	log        zerolog.Logger
}

// Option customizes a Client at construction time.
type Option func(*clientOptions)

// WithHTTPClient supplies a custom HTTP client, e.g. with a tuned transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p *RetryPolicy) Option {
	return func(o *clientOptions) { o.retry = p }
}

// WithLogger enables structured logging of requests, retries and polls.
func WithLogger(log zerolog.Logger) Option {
	return func(o *clientOptions) { o.log = log }
}

// NewClient creates a Kling API client from the given configuration.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &APIError{Kind: ErrKindValidation, Message: "config cannot be nil"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := clientOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.retry == nil {
		p := DefaultRetryPolicy()
		p.MaxAttempts = cfg.MaxRetries
		options.retry = p
	}

	t := newTransport(cfg, options.retry, options.httpClient, options.log)

	c := &Client{config: cfg, transport: t}
	c.TextToVideo = &TextToVideoService{taskFamily{t, "/v1/videos/text2video"}}
	c.ImageToVideo = &ImageToVideoService{taskFamily{t, "/v1/videos/image2video"}}
	c.MultiImageToVideo = &MultiImageToVideoService{taskFamily{t, "/v1/videos/multi-image-to-video"}}
	c.VideoExtension = &VideoExtensionService{taskFamily{t, "/v1/videos/video-extend"}}
	c.ImageGeneration = &ImageGenerationService{taskFamily{t, "/v1/images/generations"}}
	c.VirtualTryOn = &VirtualTryOnService{taskFamily{t, "/v1/images/kolors-virtual-try-on"}}
	c.LipSync = &LipSyncService{taskFamily{t, "/v1/videos/lip-sync"}}
	c.VideoEffects = &VideoEffectsService{taskFamily{t, "/v1/videos/effects"}}
	c.Account = &AccountService{t: t}
	return c, nil
}
