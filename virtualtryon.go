package klingo

import "context"

// VirtualTryOnService wraps the /v1/images/kolors-virtual-try-on endpoint
// family.
type VirtualTryOnService struct {
	taskFamily
}

// ImageSource supplies an image either by URL or as a Base64 payload.
// Exactly one of the two must be set.
type ImageSource struct {
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
	Base64 string `json:"base64,omitempty"`
}

func (s *ImageSource) empty() bool {
	return s == nil || (s.URL == "" && s.Base64 == "")
}

// VirtualTryOnRequest dresses the person in HumanImage with ClothImage.
type VirtualTryOnRequest struct {
	ModelName   string       `json:"model_name,omitempty" validate:"omitempty,oneof=kolors-virtual-try-on-v1 kolors-virtual-try-on-v1-5"`
	HumanImage  *ImageSource `json:"human_image" validate:"required"`
	ClothImage  *ImageSource `json:"cloth_image,omitempty"`
	CallbackURL string       `json:"callback_url,omitempty" validate:"omitempty,url"`
}

// Create submits a virtual try-on task.
func (s *VirtualTryOnService) Create(ctx context.Context, req *VirtualTryOnRequest) (*TaskHandle, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.HumanImage.empty() {
		return nil, &APIError{
			Kind:    ErrKindValidation,
			Message: "invalid request parameters",
			Fields:  []FieldError{{Field: "human_image", Message: "must carry a url or base64 payload"}},
		}
	}
	return s.submit(ctx, req)
}

// Get fetches the current snapshot of a task.
func (s *VirtualTryOnService) Get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	return s.get(ctx, taskID)
}

// List fetches a page of virtual try-on tasks.
func (s *VirtualTryOnService) List(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	return s.list(ctx, opts)
}

// WaitForCompletion polls the task until it reaches a terminal state.
func (s *VirtualTryOnService) WaitForCompletion(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return s.wait(ctx, taskID, opts)
}

// Generate submits a task, waits for it to finish and resolves the images.
func (s *VirtualTryOnService) Generate(ctx context.Context, req *VirtualTryOnRequest, opts *PollOptions) (*ImageListResult, error) {
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
