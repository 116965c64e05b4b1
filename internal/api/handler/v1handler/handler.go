// Package v1handler implements the HTTP handlers of the QR validation API.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"qrvalidator/internal/qrcheck"
	"qrvalidator/pkg/logger"
	"qrvalidator/pkg/serrors"
	"qrvalidator/pkg/validator"

	"go.uber.org/zap"
)

// defaultMaxUploadBytes bounds multipart bodies when Options leave it unset.
const defaultMaxUploadBytes = 32 << 20

// Deps are the services the handlers delegate to.
type Deps struct {
	QRCheck qrcheck.Service
}

// Options tune request parsing.
type Options struct {
	// MaxUploadBytes caps the whole multipart body.
	MaxUploadBytes int64
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = defaultMaxUploadBytes
	}

	return &Handler{deps: deps, options: options}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Status int `json:"status"`
	Detail any `json:"detail"`
}

// ErrorStatusCode pairs an ErrorResponse with the HTTP status to send.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

// NewError maps err to an HTTP status and body. Remote validator rejections
// keep their status and body; semantic client errors carry their message;
// everything else is a 500 quoting the original error.
func NewError(ctx context.Context, err error) *ErrorStatusCode {
	var remote *validator.RemoteError
	if errors.As(err, &remote) {
		logger.Warn(ctx, "validator rejected request",
			zap.Int("status_code", remote.StatusCode), zap.Any("detail", remote.Detail))

		status := remote.StatusCode
		if !bodyAllowed(status) {
			status = http.StatusBadGateway
		}

		return &ErrorStatusCode{
			StatusCode: status,
			Response:   ErrorResponse{Status: status, Detail: remote.Detail},
		}
	}

	status, fallback := http.StatusInternalServerError, ""
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status, fallback = http.StatusBadRequest, "bad request"
	case errors.Is(err, serrors.ErrNotFound):
		status, fallback = http.StatusNotFound, "resource not found"
	case errors.Is(err, serrors.ErrUnauthorized):
		status, fallback = http.StatusUnauthorized, "unauthorized"
	}

	if status == http.StatusInternalServerError {
		logger.Error(ctx, "could not handle request", zap.Error(err))

		return &ErrorStatusCode{
			StatusCode: status,
			Response:   ErrorResponse{Status: status, Detail: "could not process file: " + err.Error()},
		}
	}

	detail := fallback
	var sErr *serrors.Error
	if errors.As(err, &sErr) && sErr.Message() != "" {
		detail = sErr.Message()
	}
	logger.Info(ctx, "request rejected", zap.Int("status_code", status), zap.String("detail", detail))

	return &ErrorStatusCode{
		StatusCode: status,
		Response:   ErrorResponse{Status: status, Detail: detail},
	}
}

// bodyAllowed reports whether a response with status may carry a body.
func bodyAllowed(status int) bool {
	return status >= 200 && status <= 999 &&
		status != http.StatusNoContent && status != http.StatusNotModified
}

// WriteError writes the reply NewError builds for err.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	res := NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// Healthz reports liveness.
func (h Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
