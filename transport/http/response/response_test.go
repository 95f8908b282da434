package response_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantKind    failure.Kind
		wantMessage string
	}{
		{
			name:        "failure keeps its message",
			err:         failure.NotFound("room not found"),
			wantCode:    http.StatusNotFound,
			wantKind:    failure.KindNotFound,
			wantMessage: "room not found",
		},
		{
			name:        "wrapped failure",
			err:         fmt.Errorf("create booking: %w", failure.Conflict("room already booked")),
			wantCode:    http.StatusConflict,
			wantKind:    failure.KindConflict,
			wantMessage: "create booking: room already booked",
		},
		{
			name:        "foreign error is masked",
			err:         errors.New("pq: relation \"bookings\" does not exist"),
			wantCode:    http.StatusInternalServerError,
			wantKind:    failure.KindInternal,
			wantMessage: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))

			var body response.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantMessage, *body.Error)
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "r-101"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"r-101"}}`, rec.Body.String())
}

func TestFail_LogLevel(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantLevel string
	}{
		{name: "client error", err: failure.Unavailable("room is under maintenance"), wantCode: http.StatusConflict, wantLevel: `"level":"warn"`},
		{name: "server error", err: errors.New("connection reset"), wantCode: http.StatusInternalServerError, wantLevel: `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log.Logger = zerolog.New(&buf)

			rec := httptest.NewRecorder()
			response.Fail(rec, otelMocks.NewScope(), tt.err, "failed to create booking")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), "failed to create booking")
		})
	}
}
