package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// toStatus maps an application error onto a gRPC status
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var notFound *game.ErrGameNotFound
	switch {
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	violation, ok := shared.ViolationOf(err)
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}
	switch violation {
	case shared.ViolationProtocol, shared.ViolationState:
		return status.Error(codes.FailedPrecondition, err.Error())
	case shared.ViolationOwnership:
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Error(codes.InvalidArgument, err.Error())
	}
}

// RemoteError is an error reported by the daemon
type RemoteError struct {
	Code    codes.Code
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// fromStatus turns a status error received by the client into a RemoteError
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return &RemoteError{Code: st.Code(), Message: st.Message()}
}
