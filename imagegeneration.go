package klingo

import "context"

// ImageGenerationService wraps the /v1/images/generations endpoint family.
type ImageGenerationService struct {
	taskFamily
}

// ImageGenerationRequest creates one or more images from a text prompt,
// optionally guided by a reference image.
type ImageGenerationRequest struct {
	ModelName      string  `json:"model_name,omitempty" validate:"omitempty,oneof=kling-v1 kling-v1-5 kling-v2"`
	Prompt         string  `json:"prompt" validate:"required,max=2500"`
	NegativePrompt string  `json:"negative_prompt,omitempty" validate:"omitempty,max=2500"`
	Image          string  `json:"image,omitempty"`
	ImageReference string  `json:"image_reference,omitempty" validate:"omitempty,oneof=subject face"`
	ImageFidelity  float64 `json:"image_fidelity,omitempty" validate:"gte=0,lte=1"`
	HumanFidelity  float64 `json:"human_fidelity,omitempty" validate:"gte=0,lte=1"`
	N              int     `json:"n,omitempty" validate:"omitempty,gte=1,lte=9"`
	AspectRatio    string  `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=16:9 9:16 1:1 4:3 3:4 3:2 2:3"`
	CallbackURL    string  `json:"callback_url,omitempty" validate:"omitempty,url"`
}

// Create submits an image generation task.
func (s *ImageGenerationService) Create(ctx context.Context, req *ImageGenerationRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	// image_reference only has meaning when a reference image is supplied.
	if req.ImageReference != "" && req.Image == "" {
		return nil, &APIError{
			Kind:    ErrKindValidation,
			Message: "invalid request parameters",
			Fields:  []FieldError{{Field: "image", Message: "is required when image_reference is set"}},
		}
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *ImageGenerationService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of image generation tasks.
func (s *ImageGenerationService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *ImageGenerationService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the images.
func (s *ImageGenerationService) Generate(ctx context.Context, req *ImageGenerationRequest, opts *PollOptions) (*ImageListResult, error) {
	handle, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	snap, err := s.wait(ctx, handle.TaskID, opts)
	if err != nil {
		return nil, err
	}
	return ResolveImages(snap)
}
