package utils

import (
	"context"
	"runtime/debug"

	"tw-stock-insight/pkg/logger"

	"go.uber.org/zap"
)

// GoSafe runs fn in a goroutine and logs any recovered panic to log, or to
// the global zap logger when log is nil.
func GoSafe(log *logger.Logger, fn func()) {
	if log == nil {
		log = &logger.Logger{Logger: zap.L()}
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic",
					logger.Field("panic", r),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context done, stopping", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

func ToPointer[T any](v T) *T {
	return &v
}
