package klingo

import "context"

// MultiImageToVideoService wraps the /v1/videos/multi-image-to-video
// endpoint family.
type MultiImageToVideoService struct {
	taskFamily
}

// ImageItem is one input image for multi-image video generation. Image
// takes a URL or a Base64 encoded payload.
type ImageItem struct {
	Image string `json:"image" validate:"required"`
}

// MultiImageToVideoRequest creates a video from up to four input images.
type MultiImageToVideoRequest struct {
	ModelName      string      `json:"model_name,omitempty" validate:"omitempty,oneof=kling-v1-6 kling-v2-master"`
	ImageList      []ImageItem `json:"image_list" validate:"required,min=1,max=4,dive"`
	Prompt         string      `json:"prompt,omitempty" validate:"omitempty,max=2500"`
	NegativePrompt string      `json:"negative_prompt,omitempty" validate:"omitempty,max=2500"`
	Mode           string      `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	Duration       int         `json:"duration,omitempty" validate:"omitempty,oneof=5 10"`
	AspectRatio    string      `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=16:9 9:16 1:1"`
	CallbackURL    string      `json:"callback_url,omitempty" validate:"omitempty,url"`
	ExternalTaskID string      `json:"external_task_id,omitempty"`
}

// Create submits a multi-image-to-video generation task.
func (s *MultiImageToVideoService) Create(ctx context.Context, req *MultiImageToVideoRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *MultiImageToVideoService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of multi-image-to-video tasks.
func (s *MultiImageToVideoService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *MultiImageToVideoService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the videos.
func (s *MultiImageToVideoService) Generate(ctx context.Context, req *MultiImageToVideoRequest, opts *PollOptions) (*VideoListResult, error) {
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
