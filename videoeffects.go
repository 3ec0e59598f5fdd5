package klingo

import "context"

// VideoEffectsService wraps the /v1/videos/effects endpoint family. This is
// the one family whose tasks may also end up cancelled.
type VideoEffectsService struct {
	taskFamily
}

// VideoEffectsRequest applies an effect to an existing video.
type VideoEffectsRequest struct {
	VideoURL       string            `json:"video_url" validate:"required,url"`
	EffectType     string            `json:"effect_type" validate:"required,oneof=style_transfer filter enhance stabilize"`
	Intensity      float64           `json:"intensity,omitempty" validate:"gte=0,lte=1"`
	Quality        string            `json:"quality,omitempty" validate:"omitempty,oneof=low medium high ultra"`
	StyleReference string            `json:"style_reference,omitempty" validate:"omitempty,url"`
	CallbackURL    string            `json:"callback_url,omitempty" validate:"omitempty,url"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Create submits a video effects task.
func (s *VideoEffectsService) Create(ctx context.Context, req *VideoEffectsRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.EffectType == "style_transfer" && req.StyleReference == "" {
		return nil, &APIError{
			Kind:    ErrKindValidation,
			Message: "invalid request parameters",
			Fields:  []FieldError{{Field: "style_reference", Message: "is required for the style_transfer effect"}},
		}
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *VideoEffectsService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of video effects tasks.
func (s *VideoEffectsService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *VideoEffectsService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the videos.
func (s *VideoEffectsService) Generate(ctx context.Context, req *VideoEffectsRequest, opts *PollOptions) (*VideoListResult, error) {
	handle, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	snap, err := s.wait(ctx, handle.TaskID, opts)
	if err != nil {
		return nil, err
	}
	return ResolveVideos(snap)
}
