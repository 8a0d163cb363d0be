package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

func TestKindsWrap(t *testing.T) {
	err := Conflict("user %d already follows %d", 1, 2)

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "already exists: user 1 already follows 2", err.Error())

	// still matches after further wrapping
	assert.ErrorIs(t, fmt.Errorf("follow: %w", err), ErrConflict)
}

func TestMap(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"validation", Validation("name too short"), codes.InvalidArgument},
		{"invalid argument", InvalidArgument("unknown action"), codes.InvalidArgument},
		{"conflict", Conflict("edge"), codes.AlreadyExists},
		{"not found", NotFound("edge"), codes.NotFound},
		{"gorm not found", gorm.ErrRecordNotFound, codes.NotFound},
		{"unauthenticated", Unauthenticated("missing token"), codes.Unauthenticated},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"other", errors.New("boom"), codes.Internal},
		{"already status", status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, status.Code(Map(tc.err)))
		})
	}

	assert.NoError(t, Map(nil))
}
