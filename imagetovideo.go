package klingo

import "context"

// ImageToVideoService wraps the /v1/videos/image2video endpoint family.
type ImageToVideoService struct {
	taskFamily
}

// ImageToVideoRequest animates a still image. Image takes a URL or a Base64
// encoded payload.
type ImageToVideoRequest struct {
	ModelName      string         `json:"model_name,omitempty" validate:"omitempty,oneof=kling-v1 kling-v1-6 kling-v2-master"`
	Image          string         `json:"image" validate:"required"`
	ImageTail      string         `json:"image_tail,omitempty"`
	Prompt         string         `json:"prompt,omitempty" validate:"omitempty,max=2500"`
	NegativePrompt string         `json:"negative_prompt,omitempty" validate:"omitempty,max=2500"`
	CFGScale       float64        `json:"cfg_scale,omitempty" validate:"gte=0,lte=1"`
	Mode           string         `json:"mode,omitempty" validate:"omitempty,oneof=std pro"`
	CameraControl  *CameraControl `json:"camera_control,omitempty"`
	Duration       int            `json:"duration,omitempty" validate:"omitempty,oneof=5 10"`
	CallbackURL    string         `json:"callback_url,omitempty" validate:"omitempty,url"`
	ExternalTaskID string         `json:"external_task_id,omitempty"`
}

// Create submits an image-to-video generation task.
func (s *ImageToVideoService) Create(ctx context.Context, req *ImageToVideoRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *ImageToVideoService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of image-to-video tasks.
func (s *ImageToVideoService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *ImageToVideoService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the videos.
func (s *ImageToVideoService) Generate(ctx context.Context, req *ImageToVideoRequest, opts *PollOptions) (*VideoListResult, error) {
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
