// Package callback serves the inbound webhook endpoint Kling AI posts task
// status updates to. The route decodes the body into a TaskSnapshot,
// validates it and hands it to the injected handler.
package callback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/feitianbubu/klingo"
)

// Handler receives each valid decoded snapshot. A non-nil error is reported
// to the caller as a processing failure.
type Handler func(ctx context.Context, snap *klingo.TaskSnapshot) error

// Options configures the callback router.
type Options struct {
	// Secret enables HMAC-SHA256 verification of the raw request body
	// against the X-Kling-Signature header. Empty disables verification.
	Secret string
	Logger zerolog.Logger
}

// AckResponse acknowledges a received callback.
type AckResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	ReceivedAt int64  `json:"received_at"` // Unix milliseconds
	TaskID     string `json:"task_id"`
}

// ErrorResponse reports a callback that could not be processed.
type ErrorResponse struct {
	Status  string                 `json:"status"`
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type server struct {
	handler Handler
	secret  string
	log     zerolog.Logger
}

// snapshotValidator only needs the cross-field checks relevant to inbound
// payloads, so it is separate from the request validator in package klingo.
var snapshotValidator = validator.New(validator.WithRequiredStructEnabled())

// callbackBody mirrors klingo.TaskSnapshot with the validation the route
// enforces before acknowledging.
type callbackBody struct {
	TaskID        string             `json:"task_id" validate:"required"`
	Status        klingo.TaskStatus  `json:"task_status" validate:"required,oneof=submitted processing succeed failed cancelled"`
	StatusMessage string             `json:"task_status_msg"`
	Info          klingo.TaskInfo    `json:"task_info"`
	CreatedAt     int64              `json:"created_at"`
	UpdatedAt     int64              `json:"updated_at"`
	Result        *klingo.TaskResult `json:"task_result"`
}

// NewRouter builds the callback router. The handler is injected here rather
// than registered in package state; pass nil to acknowledge and drop
// callbacks.
func NewRouter(h Handler, opts *Options) chi.Router {
	s := &server{handler: h, log: zerolog.Nop()}
	if opts != nil {
		s.secret = opts.Secret
		s.log = opts.Logger
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/callbacks/kling", s.handleKlingCallback)
	return r
}

func (s *server) handleKlingCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, &ErrorResponse{
			Status:  "error",
			Error:   "read_error",
			Message: "failed to read request body",
		})
		return
	}

	if s.secret != "" {
		if err := verifySignature(body, r.Header.Get(SignatureHeader), s.secret); err != nil {
			s.log.Warn().Err(err).Msg("callback signature rejected")
			s.respondError(w, http.StatusUnauthorized, &ErrorResponse{
				Status:  "error",
				Error:   "invalid_signature",
				Message: err.Error(),
			})
			return
		}
	}

	var cb callbackBody
	if err := json.Unmarshal(body, &cb); err != nil {
		s.respondValidationError(w, []map[string]string{{"field": "body", "message": "malformed JSON: " + err.Error()}})
		return
	}
	if err := snapshotValidator.Struct(&cb); err != nil {
		var details []map[string]string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details = append(details, map[string]string{
					"field":   fe.Field(),
					"message": "failed " + fe.Tag() + " validation",
				})
			}
		} else {
			details = append(details, map[string]string{"field": "body", "message": err.Error()})
		}
		s.respondValidationError(w, details)
		return
	}

	snap := &klingo.TaskSnapshot{
		TaskID:        cb.TaskID,
		Status:        cb.Status,
		StatusMessage: cb.StatusMessage,
		Info:          cb.Info,
		CreatedAt:     cb.CreatedAt,
		UpdatedAt:     cb.UpdatedAt,
		Result:        cb.Result,
	}

	if s.handler != nil {
		if err := s.handler(r.Context(), snap); err != nil {
			s.log.Error().Err(err).Str("task_id", snap.TaskID).Msg("callback handler failed")
			s.respondError(w, http.StatusInternalServerError, &ErrorResponse{
				Status:  "error",
				Error:   fmt.Sprintf("%T", err),
				Message: err.Error(),
			})
			return
		}
	} else {
		s.log.Debug().Str("task_id", snap.TaskID).Msg("no callback handler registered, dropping snapshot")
	}

	s.respondJSON(w, http.StatusAccepted, &AckResponse{
		Status:     "success",
		Message:    "callback received and queued for processing",
		ReceivedAt: time.Now().UnixMilli(),
		TaskID:     snap.TaskID,
	})
}

func (s *server) respondValidationError(w http.ResponseWriter, details []map[string]string) {
	s.respondError(w, http.StatusUnprocessableEntity, &ErrorResponse{
		Status:  "error",
		Error:   "validation_error",
		Message: "invalid callback data",
		Details: map[string]interface{}{"validation_errors": details},
	})
}

func (s *server) respondError(w http.ResponseWriter, status int, resp *ErrorResponse) {
	s.respondJSON(w, status, resp)
}

func (s *server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode callback response")
	}
}
