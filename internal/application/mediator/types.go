package mediator

import (
	"context"
	"reflect"
	"strings"
)

// Request is a game command or query, e.g. *commands.PerformActionCommand.
// Commands change a game; queries such as *queries.GetLedgerQuery only read one.
type Request interface{}

// Response is whatever the request's handler returns, e.g. *queries.GetLedgerResponse
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is the next step of a middleware chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every Send. The daemon installs request logging and,
// when metrics are enabled, Prometheus timing.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// RequestKind is "command", "query" or "request", read from the type name suffix
func RequestKind(request Request) string {
	if request == nil {
		return "request"
	}
	name := reflect.TypeOf(request).String()
	switch {
	case strings.HasSuffix(name, "Command"):
		return "command"
	case strings.HasSuffix(name, "Query"):
		return "query"
	default:
		return "request"
	}
}
