package common

import (
	"context"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// LoggingMiddleware puts logger in the request context and logs every request
// with its duration. Rule violations are logged at warn, other failures at error.
func LoggingMiddleware(logger *zap.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		name := RequestName(request)
		log := logger.With(zap.String("request", name))

		start := time.Now()
		resp, err := next(WithLogger(ctx, log), request)
		elapsed := zap.Duration("duration", time.Since(start))

		switch {
		case err == nil:
			log.Debug("request handled", elapsed)
		case isViolation(err):
			log.Warn("request rejected", elapsed, zap.Error(err))
		default:
			log.Error("request failed", elapsed, zap.Error(err))
		}
		return resp, err
	}
}

// RequestName returns the bare type name of a request, e.g. "PerformActionCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isViolation(err error) bool {
	_, ok := shared.ViolationOf(err)
	return ok
}
