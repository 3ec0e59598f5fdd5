package klingo

import "context"

// LipSyncService wraps the /v1/videos/lip-sync endpoint family.
type LipSyncService struct {
	taskFamily
}

// LipSyncRequest re-synchronizes the mouth movement in VideoURL to the
// audio track at AudioURL.
type LipSyncRequest struct {
	VideoURL     string            `json:"video_url" validate:"required,url"`
	AudioURL     string            `json:"audio_url" validate:"required,url"`
	OutputFormat string            `json:"output_format,omitempty" validate:"omitempty,oneof=mp4 gif"`
	Resolution   string            `json:"resolution,omitempty"`
	FPS          int               `json:"fps,omitempty" validate:"omitempty,gte=1,lte=60"`
	CallbackURL  string            `json:"callback_url,omitempty" validate:"omitempty,url"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Create submits a lip sync task.
func (s *LipSyncService) Create(ctx context.Context, req *LipSyncRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *LipSyncService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of lip sync tasks.
func (s *LipSyncService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *LipSyncService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the videos.
func (s *LipSyncService) Generate(ctx context.Context, req *LipSyncRequest, opts *PollOptions) (*VideoListResult, error) {
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
