package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind failure.Kind
		wantMsg  string
	}{
		{"bad request", failure.BadRequest(errors.New("page must be a number")), http.StatusBadRequest, failure.KindBadRequest, "page must be a number"},
		{"bad request from string", failure.BadRequestFromString("invalid date"), http.StatusBadRequest, failure.KindBadRequest, "invalid date"},
		{"unauthorized", failure.Unauthorized("token expired"), http.StatusUnauthorized, failure.KindUnauthorized, "token expired"},
		{"forbidden", failure.Forbidden("admins only"), http.StatusForbidden, failure.KindForbidden, "admins only"},
		{"predefined forbidden", failure.ForbiddenError, http.StatusForbidden, failure.KindForbidden, "You don't have the required permissions"},
		{"not found", failure.NotFound("room not found"), http.StatusNotFound, failure.KindNotFound, "room not found"},
		{"conflict", failure.Conflict("room number already exists"), http.StatusConflict, failure.KindConflict, "room number already exists"},
		{"invalid input", failure.InvalidInput("check-out must be after check-in"), http.StatusBadRequest, failure.KindInvalidInput, "check-out must be after check-in"},
		{"unavailable", failure.Unavailable("room is under maintenance"), http.StatusConflict, failure.KindUnavailable, "room is under maintenance"},
		{"invalid transition", failure.InvalidTransition("booking is already cancelled"), http.StatusUnprocessableEntity, failure.KindInvalidTransition, "booking is already cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			require.ErrorAs(t, tt.err, &fail)

			assert.Equal(t, tt.wantCode, fail.Code)
			assert.Equal(t, tt.wantKind, fail.Kind)
			assert.EqualError(t, tt.err, tt.wantMsg)
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCodeAndKind(t *testing.T) {
	conflict := failure.Conflict("room is locked")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind failure.Kind
	}{
		{name: "failure", err: conflict, wantCode: http.StatusConflict, wantKind: failure.KindConflict},
		{name: "wrapped failure", err: fmt.Errorf("create booking: %w", conflict), wantCode: http.StatusConflict, wantKind: failure.KindConflict},
		{name: "failure without kind", err: &failure.Failure{Code: http.StatusTeapot}, wantCode: http.StatusTeapot, wantKind: failure.KindInternal},
		{name: "foreign error", err: errors.New("connection reset"), wantCode: http.StatusInternalServerError, wantKind: failure.KindInternal},
		{name: "nil", err: nil, wantCode: http.StatusInternalServerError, wantKind: failure.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantKind, failure.GetKind(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.False(t, failure.Is(nil, failure.KindInternal))
	assert.True(t, failure.Is(errors.New("connection reset"), failure.KindInternal))
	assert.True(t, failure.Is(fmt.Errorf("wrap: %w", failure.NotFound("guest not found")), failure.KindNotFound))
	assert.False(t, failure.Is(failure.NotFound("guest not found"), failure.KindConflict))
}
