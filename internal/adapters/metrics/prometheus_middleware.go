package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/baron-go/internal/application/common"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
)

// PrometheusMiddleware times each request, labelled by its type name, e.g.
// "PerformActionCommand", and whether it is a command or a query
func PrometheusMiddleware(collector *RequestMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Metrics disabled
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordRequest(common.RequestName(request), mediator.RequestKind(request), time.Since(start).Seconds(), err)
		return response, err
	}
}
