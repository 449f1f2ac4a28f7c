package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool // the response header must echo requestTraceID
		wantValidUUID   bool // the response header must be a valid UUID
	}{
		{
			name:           "non-UUID trace ID from request header is replaced",
			requestTraceID: "my-custom-trace-id",
			wantValidUUID:  true,
		},
		{
			name:          "no trace ID in request generates a UUID",
			wantValidUUID: true,
		},
		{
			name:            "UUID string as incoming trace ID is preserved",
			requestTraceID:  "550e8400-e29b-41d4-a716-446655440000",
			wantSameTraceID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, nil)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}

			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			assert.True(t, nextCalled)
			assert.Equal(t, http.StatusOK, rr.Code)

			got := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)

			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, got)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}
