package klingo

import "time"

// TaskStatus represents the status of an asynchronous generation task.
// The values match the wire format of the Kling API.
type TaskStatus string

const (
	StatusSubmitted  TaskStatus = "submitted"
	StatusProcessing TaskStatus = "processing"
	StatusSucceeded  TaskStatus = "succeed"
	StatusFailed     TaskStatus = "failed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Terminal reports whether no further status transitions can occur.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// TaskHandle identifies a submitted task. It is immutable and owned by the
// caller for the lifetime of the task.
type TaskHandle struct {
	TaskID      string
	SubmittedAt time.Time
}

// Image is one generated image in a task result.
type Image struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// Video is one generated video in a task result.
type Video struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Duration string `json:"duration"` // seconds, as reported by the API
}

// TaskResult carries the media produced by a succeeded task.
type TaskResult struct {
	Images []Image `json:"images,omitempty"`
	Videos []Video `json:"videos,omitempty"`
}

// ParentVideo references the source video of an extension task.
type ParentVideo struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

// TaskInfo echoes the creation parameters of a task.
type TaskInfo struct {
	ExternalTaskID string       `json:"external_task_id,omitempty"`
	ParentVideo    *ParentVideo `json:"parent_video,omitempty"`
}

// TaskSnapshot is one immutable observation of task state. Every poll
// produces a fresh snapshot; none is ever mutated in place.
type TaskSnapshot struct {
	TaskID        string      `json:"task_id"`
	Status        TaskStatus  `json:"task_status"`
	StatusMessage string      `json:"task_status_msg,omitempty"`
	Info          TaskInfo    `json:"task_info"`
	CreatedAt     int64       `json:"created_at"` // Unix milliseconds
	UpdatedAt     int64       `json:"updated_at"` // Unix milliseconds
	Result        *TaskResult `json:"task_result,omitempty"`
}

// CreatedTime returns the creation timestamp as a time.Time.
func (s *TaskSnapshot) CreatedTime() time.Time { return msTime(s.CreatedAt) }

// UpdatedTime returns the last update timestamp as a time.Time.
func (s *TaskSnapshot) UpdatedTime() time.Time { return msTime(s.UpdatedAt) }

// Some deployments report seconds instead of milliseconds. Anything below
// 1e12 cannot be a millisecond timestamp for any plausible date.
func msTime(v int64) time.Time {
	if v > 0 && v < 1_000_000_000_000 {
		v *= 1000
	}
	return time.UnixMilli(v)
}

// ImageListResult is the structured output of an image-producing task.
type ImageListResult struct {
	Entries []Image
}

// VideoListResult is the structured output of a video-producing task.
type VideoListResult struct {
	Entries []Video
}

// Resolve turns a terminal snapshot into its result. It is pure and performs
// no I/O: a succeeded snapshot yields its TaskResult, a failed one a
// *TaskFailedError and a cancelled one a *TaskCancelledError. Calling it
// twice on the same snapshot yields the same outcome.
func Resolve(snap *TaskSnapshot) (*TaskResult, error) {
	switch snap.Status {
	case StatusSucceeded:
		if snap.Result == nil {
			return nil, &APIError{
				Kind:    ErrKindDecode,
				Message: "task " + snap.TaskID + " succeeded but carries no result",
			}
		}
		return snap.Result, nil
	case StatusFailed:
		msg := snap.StatusMessage
		if msg == "" {
			msg = "task failed without details"
		}
		return nil, &TaskFailedError{TaskID: snap.TaskID, StatusMessage: msg}
	case StatusCancelled:
		return nil, &TaskCancelledError{TaskID: snap.TaskID}
	default:
		return nil, &APIError{
			Kind:    ErrKindAPI,
			Message: "task " + snap.TaskID + " is not in a terminal state: " + string(snap.Status),
		}
	}
}

// ResolveImages resolves a snapshot expected to carry generated images.
func ResolveImages(snap *TaskSnapshot) (*ImageListResult, error) {
	result, err := Resolve(snap)
	if err != nil {
		return nil, err
	}
	if len(result.Images) == 0 {
		return nil, &APIError{
			Kind:    ErrKindDecode,
			Message: "task " + snap.TaskID + " result carries no images",
		}
	}
	return &ImageListResult{Entries: result.Images}, nil
}

// ResolveVideos resolves a snapshot expected to carry generated videos.
func ResolveVideos(snap *TaskSnapshot) (*VideoListResult, error) {
	result, err := Resolve(snap)
	if err != nil {
		return nil, err
	}
	if len(result.Videos) == 0 {
		return nil, &APIError{
			Kind:    ErrKindDecode,
			Message: "task " + snap.TaskID + " result carries no videos",
		}
	}
	return &VideoListResult{Entries: result.Videos}, nil
}
