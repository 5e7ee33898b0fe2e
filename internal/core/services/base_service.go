package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/metrics"
	"github.com/SscSPs/mandi_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Logger *slog.Logger
}

// GetLogger returns the request-scoped logger, falling back to the injected one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs an expected failure with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("reason", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// errorKind names the failure category used for log level and metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrLinkage):
		return "linkage"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrCalculation):
		return "calculation"
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "storage"
	}
}

// reportFailure logs err at the level its category calls for and counts it.
// Business failures are warnings; everything else is an error.
func (s *BaseService) reportFailure(ctx context.Context, operation string, err error, keyvals ...any) {
	kind := errorKind(err)
	metrics.OperationsFailed.WithLabelValues(operation, kind).Inc()

	keyvals = append(keyvals, slog.String("operation", operation), slog.String("kind", kind))
	switch kind {
	case "validation", "linkage", "not_found", "conflict":
		s.LogWarn(ctx, err, "Ledger operation rejected", keyvals...)
	default:
		s.LogError(ctx, err, "Ledger operation failed", keyvals...)
	}
}
