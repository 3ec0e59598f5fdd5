package klingo

import "context"

// VideoExtensionService wraps the /v1/videos/video-extend endpoint family.
type VideoExtensionService struct {
	taskFamily
}

// VideoExtensionRequest extends a previously generated video by a few
// seconds. VideoID references the video to extend, not a task.
type VideoExtensionRequest struct {
	VideoID        string  `json:"video_id" validate:"required"`
	Prompt         string  `json:"prompt,omitempty" validate:"omitempty,max=2500"`
	NegativePrompt string  `json:"negative_prompt,omitempty" validate:"omitempty,max=2500"`
	CFGScale       float64 `json:"cfg_scale,omitempty" validate:"gte=0,lte=1"`
	CallbackURL    string  `json:"callback_url,omitempty" validate:"omitempty,url"`
}

// Create submits a video extension task.
func (s *VideoExtensionService) Create(ctx context.Context, req *VideoExtensionRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task. The snapshot's task_info
// carries a parent_video reference back to the source video.
func (s *VideoExtensionService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of video extension tasks.
func (s *VideoExtensionService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *VideoExtensionService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the videos.
func (s *VideoExtensionService) Generate(ctx context.Context, req *VideoExtensionRequest, opts *PollOptions) (*VideoListResult, error) {
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
