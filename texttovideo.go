package klingo

import "context"

// TextToVideoService wraps the /v1/videos/text2video endpoint family.
type TextToVideoService struct {
	taskFamily
}

// TextToVideoRequest creates a video from a text prompt.
type TextToVideoRequest struct {
	ModelName      string         `json:"model_name,omitempty" validate:"omitempty,oneof=kling-v1 kling-v1-6 kling-v2-master"`
	Prompt         string         `json:"prompt" validate:"required,max=2500"`
	NegativePrompt string         `json:"negative_prompt,omitempty" validate:"omitempty,max=2500"`
	CFGScale       float64        `json:"cfg_scale,omitempty" validate:"gte=0,lte=1"`
	Mode           string         `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	CameraControl  *CameraControl `json:"camera_control,omitempty"`
	AspectRatio    string         `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=16:9 9:16 1:1"`
	Duration       int            `json:"duration,omitempty" validate:"omitempty,oneof=5 10"`
	CallbackURL    string         `json:"callback_url,omitempty" validate:"omitempty,url"`
	ExternalTaskID string         `json:"external_task_id,omitempty"`
}

// Create submits a text-to-video generation task.
func (s *TextToVideoService) Create(ctx context.Context, req *TextToVideoRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *TextToVideoService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of text-to-video tasks.
func (s *TextToVideoService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *TextToVideoService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the videos.
func (s *TextToVideoService) Generate(ctx context.Context, req *TextToVideoRequest, opts *PollOptions) (*VideoListResult, error) {
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
