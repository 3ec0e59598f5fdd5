package klingo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const userAgent = "klingo-sdk/1.0"

// transport performs authenticated HTTP calls against the Kling API with
// error classification and retries around transient failures. It is safe
// for concurrent use; the pooled http.Client carries no per-task state.
type transport struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	accessKey string
	secretKey string
	retry     *RetryPolicy
	log       zerolog.Logger
}

func newTransport(cfg *Config, policy *RetryPolicy, httpClient *http.Client, log zerolog.Logger) *transport {
	t := &transport{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		retry:   policy,
		log:     log,
	}
	if t.http == nil {
		t.http = &http.Client{Timeout: cfg.timeout()}
	}
	if parts := strings.SplitN(cfg.APIKey, ",", 2); len(parts) == 2 {
		t.accessKey = strings.TrimSpace(parts[0])
		t.secretKey = strings.TrimSpace(parts[1])
	}
	return t
}

// bearerToken returns the Authorization credential for one request. A key
// pair is minted into a short-lived signed token; a plain key passes through.
func (t *transport) bearerToken() (string, error) {
	if t.secretKey == "" {
		return t.apiKey, nil
	}

	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iss": t.accessKey,
		"exp": now + 1800,
		"nbf": now - 5,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["typ"] = "JWT"
	signed, err := token.SignedString([]byte(t.secretKey))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign API token")
	}
	return signed, nil
}

// envelope is the standard response wrapper: code 0 means success and data
// carries the payload.
type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// do performs one API call, retrying transient failures per the retry
// policy, and unmarshals the envelope data into out when out is non-nil.
func (t *transport) do(ctx context.Context, method, path string, body interface{}, query url.Values, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			delay := t.retry.DelayForError(lastErr, attempt-1)
			t.log.Debug().
				Str("method", method).
				Str("path", path).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying request")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := t.roundTrip(ctx, method, path, payload, query, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !t.retry.ShouldRetry(err, attempt) {
			return err
		}
		t.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt).
			Err(err).
			Msg("transient request failure")
	}
}

func (t *transport) roundTrip(ctx context.Context, method, path string, payload []byte, query url.Values, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	token, err := t.bearerToken()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	t.log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("request")

	resp, err := t.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, resp.Header, respBody)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return decodeError(err)
	}
	if env.Code != 0 {
		return &APIError{
			Kind:       ErrKindAPI,
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
			RequestID:  env.RequestID,
		}
	}
	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return decodeError(err)
		}
	}
	return nil
}
