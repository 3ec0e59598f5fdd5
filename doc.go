// Package klingo is a Go client for the Kling AI generative media API.
//
// Every generation endpoint follows the same asynchronous lifecycle: a
// creation request returns an opaque task ID, the task is polled until it
// reaches a terminal state and the terminal snapshot resolves into the
// generated media or a typed failure. That lifecycle is implemented once
// and shared by all endpoint families (text-to-video, image-to-video,
// multi-image-to-video, video extension, image generation, virtual try-on,
// lip sync, video effects).
//
// Transient failures (rate limiting, server errors, timeouts) are retried
// with exponential backoff; everything else surfaces immediately as an
// *APIError carrying the classified kind, status code and request ID.
package klingo
