package klingo

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// ListOptions selects a page of tasks.
type ListOptions struct {
	PageNum  int `validate:"omitempty,gte=1,lte=1000"`
	PageSize int `validate:"omitempty,gte=1,lte=500"`
}

func (o *ListOptions) query() url.Values {
	pageNum, pageSize := 1, 30
	if o != nil {
		if o.PageNum > 0 {
			pageNum = o.PageNum
		}
		if o.PageSize > 0 {
			pageSize = o.PageSize
		}
	}
	q := url.Values{}
	q.Set("pageNum", strconv.Itoa(pageNum))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// taskFamily is the lifecycle machinery shared by every task endpoint
// family: submit one task, fetch one snapshot, list snapshots and poll
// until a terminal state. Validation of the family-specific request happens
// in the typed Create methods before submit is called.
type taskFamily struct {
	t    *transport
	path string // create/list path; fetches append "/{task_id}"
}

// submit issues the creation request and returns the task handle. The retry
// policy applies to transient failures only; validation and authentication
// errors surface immediately.
func (f *taskFamily) submit(ctx context.Context, req interface{}) (*TaskHandle, error) {
	var snap TaskSnapshot
	if err := f.t.do(ctx, "POST", f.path, req, nil, &snap); err != nil {
		return nil, err
	}
	if snap.TaskID == "" {
		return nil, &APIError{Kind: ErrKindDecode, Message: "response carries no task_id"}
	}
	return &TaskHandle{TaskID: snap.TaskID, SubmittedAt: time.Now()}, nil
}

// get fetches one fresh snapshot of the task.
func (f *taskFamily) get(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	if taskID == "" {
		return nil, &APIError{
			Kind:    ErrKindValidation,
			Message: "invalid request parameters",
			Fields:  []FieldError{{Field: "task_id", Message: "is required"}},
		}
	}
	var snap TaskSnapshot
	if err := f.t.do(ctx, "GET", f.path+"/"+url.PathEscape(taskID), nil, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// list fetches a page of task snapshots.
func (f *taskFamily) list(ctx context.Context, opts *ListOptions) ([]TaskSnapshot, error) {
	if opts != nil {
		if err := validateStruct(opts); err != nil {
			return nil, err
		}
	}
	var snaps []TaskSnapshot
	if err := f.t.do(ctx, "GET", f.path, nil, opts.query(), &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// wait polls the task until it reaches a terminal state or the poll timeout
// elapses, returning the terminal snapshot.
func (f *taskFamily) wait(ctx context.Context, taskID string, opts *PollOptions) (*TaskSnapshot, error) {
	return pollUntilTerminal(ctx, f.get, TaskHandle{TaskID: taskID}, opts)
}
