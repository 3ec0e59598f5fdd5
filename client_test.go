package klingo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := DefaultConfig("test-key")
	cfg.BaseURL = baseURL
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := NewClient(DefaultConfig("key"))
		require.NoError(t, err)
		assert.NotNil(t, client.TextToVideo)
		assert.NotNil(t, client.ImageToVideo)
		assert.NotNil(t, client.MultiImageToVideo)
		assert.NotNil(t, client.VideoExtension)
		assert.NotNil(t, client.ImageGeneration)
		assert.NotNil(t, client.VirtualTryOn)
		assert.NotNil(t, client.LipSync)
		assert.NotNil(t, client.VideoEffects)
		assert.NotNil(t, client.Account)
	})

	t.Run("nil config rejected", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})

	t.Run("missing api key rejected", func(t *testing.T) {
		cfg := DefaultConfig("")
		_, err := NewClient(cfg)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrKindValidation, apiErr.Kind)
	})
}

// Scenario: submit an image generation task, watch it go processing then
// succeed, and resolve exactly one image at index 0.
func TestImageGenerationLifecycle(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/images/generations":
			writeEnvelope(w, map[string]interface{}{"task_id": "t1", "task_status": "submitted"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/images/generations/t1":
			if polls.Add(1) == 1 {
				writeEnvelope(w, map[string]interface{}{"task_id": "t1", "task_status": "processing"})
				return
			}
			writeEnvelope(w, map[string]interface{}{
				"task_id":     "t1",
				"task_status": "succeed",
				"task_result": map[string]interface{}{
					"images": []map[string]interface{}{{"index": 0, "url": "https://cdn.example.com/i0.png"}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv.URL)
	result, err := client.ImageGeneration.Generate(context.Background(), &ImageGenerationRequest{
		Prompt: "a lighthouse in a storm",
	}, &PollOptions{Interval: time.Millisecond, Timeout: time.Second})

	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 0, result.Entries[0].Index)
	assert.Equal(t, "https://cdn.example.com/i0.png", result.Entries[0].URL)
	assert.Equal(t, int32(2), polls.Load())
}

// Scenario: the task fails on the remote side and the failure surfaces as a
// typed error carrying the status message.
func TestTextToVideoTaskFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/videos/text2video":
			writeEnvelope(w, map[string]interface{}{"task_id": "t2", "task_status": "submitted"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/videos/text2video/t2":
			writeEnvelope(w, map[string]interface{}{
				"task_id":         "t2",
				"task_status":     "failed",
				"task_status_msg": "content policy violation",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv.URL)
	_, err := client.TextToVideo.Generate(context.Background(), &TextToVideoRequest{
		Prompt: "something disallowed",
	}, &PollOptions{Interval: time.Millisecond, Timeout: time.Second})

	var failed *TaskFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "t2", failed.TaskID)
	assert.Equal(t, "content policy violation", failed.StatusMessage)
}

func TestCreateValidatesBeforeSubmitting(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := testClient(t, srv.URL)

	t.Run("missing prompt", func(t *testing.T) {
		_, err := client.TextToVideo.Create(context.Background(), &TextToVideoRequest{})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrKindValidation, apiErr.Kind)
		require.NotEmpty(t, apiErr.Fields)
		assert.Equal(t, "prompt", apiErr.Fields[0].Field)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := client.TextToVideo.Create(context.Background(), &TextToVideoRequest{Prompt: "ok", Duration: 7})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrKindValidation, apiErr.Kind)
	})

	t.Run("empty task id on get", func(t *testing.T) {
		_, err := client.TextToVideo.Get(context.Background(), "")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrKindValidation, apiErr.Kind)
	})

	assert.Zero(t, requests, "invalid requests must never reach the server")
}

func TestListPagination(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeEnvelope(w, []map[string]interface{}{
			{"task_id": "t1", "task_status": "succeed"},
			{"task_id": "t2", "task_status": "processing"},
		})
	}))
	defer srv.Close()

	client := testClient(t, srv.URL)

	t.Run("defaults applied", func(t *testing.T) {
		snaps, err := client.TextToVideo.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, snaps, 2)
		assert.Equal(t, []string{"1"}, gotQuery["pageNum"])
		assert.Equal(t, []string{"30"}, gotQuery["pageSize"])
	})

	t.Run("explicit page", func(t *testing.T) {
		_, err := client.TextToVideo.List(context.Background(), &ListOptions{PageNum: 3, PageSize: 50})
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, gotQuery["pageNum"])
		assert.Equal(t, []string{"50"}, gotQuery["pageSize"])
	})

	t.Run("out of range rejected", func(t *testing.T) {
		_, err := client.TextToVideo.List(context.Background(), &ListOptions{PageNum: 1001})
		assert.Error(t, err)

		_, err = client.TextToVideo.List(context.Background(), &ListOptions{PageSize: 501})
		assert.Error(t, err)
	})
}

func TestAccountCosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/account/costs", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("start_time"))
		assert.Equal(t, "200", r.URL.Query().Get("end_time"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0, "message": "SUCCEED", "request_id": "req-1",
			"data": map[string]interface{}{
				"code": 0, "msg": "ok",
				"resource_pack_subscribe_infos": []map[string]interface{}{{
					"resource_pack_name": "Video Pack",
					"resource_pack_id":   "rp-1",
					"total_quantity":     1000.0,
					"remaining_quantity": 118.0,
					"status":             "online",
				}},
			},
		})
	}))
	defer srv.Close()

	client := testClient(t, srv.URL)
	costs, err := client.Account.Costs(context.Background(), &AccountCostsRequest{StartTime: 100, EndTime: 200})
	require.NoError(t, err)
	require.Len(t, costs.ResourcePacks, 1)
	assert.Equal(t, "Video Pack", costs.ResourcePacks[0].ResourcePackName)
	assert.Equal(t, 118.0, costs.ResourcePacks[0].RemainingQuantity)

	_, err = client.Account.Costs(context.Background(), &AccountCostsRequest{StartTime: 200, EndTime: 100})
	assert.Error(t, err)
}

func TestVideoEffectsStyleTransferRequiresReference(t *testing.T) {
	client := testClient(t, "https://unused.example.com")
	_, err := client.VideoEffects.Create(context.Background(), &VideoEffectsRequest{
		VideoURL:   "https://cdn.example.com/in.mp4",
		EffectType: "style_transfer",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindValidation, apiErr.Kind)
	assert.Equal(t, "style_reference", apiErr.Fields[0].Field)
}

func TestVirtualTryOnRequiresImagePayload(t *testing.T) {
	client := testClient(t, "https://unused.example.com")
	_, err := client.VirtualTryOn.Create(context.Background(), &VirtualTryOnRequest{
		HumanImage: &ImageSource{},
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "human_image", apiErr.Fields[0].Field)
}
