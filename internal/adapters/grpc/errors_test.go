package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"not found", fmt.Errorf("load: %w", &game.ErrGameNotFound{ID: "g1"}), codes.NotFound},
		{"protocol", shared.NewDomainError(shared.ViolationProtocol, "out of turn"), codes.FailedPrecondition},
		{"state", shared.NewDomainError(shared.ViolationState, "round not over"), codes.FailedPrecondition},
		{"ownership", shared.NewDomainError(shared.ViolationOwnership, "not owned"), codes.PermissionDenied},
		{"value", shared.NewValidationError("amount", "negative"), codes.InvalidArgument},
		{"structural", shared.NewDomainError(shared.ViolationStructural, "empty"), codes.InvalidArgument},
		{"deadline", fmt.Errorf("save: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"unclassified", errors.New("disk full"), codes.Internal},
		{"already a status", status.Error(codes.ResourceExhausted, "slow down"), codes.ResourceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(toStatus(tt.err)))
		})
	}

	assert.NoError(t, toStatus(nil))
}

func TestFromStatus(t *testing.T) {
	err := fromStatus(status.Error(codes.NotFound, "game g1 not found"))

	var remote *RemoteError
	assert.ErrorAs(t, err, &remote)
	assert.Equal(t, codes.NotFound, remote.Code)
	assert.Equal(t, "game g1 not found", err.Error())

	plain := errors.New("boom")
	assert.Equal(t, plain, fromStatus(plain))
}
