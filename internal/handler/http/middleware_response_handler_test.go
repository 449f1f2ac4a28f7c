package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter(t *testing.T) {
	t.Run("records status and size", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
		w.Write([]byte(" world"))

		assert.Equal(t, http.StatusCreated, w.status)
		assert.Equal(t, len("hello world"), w.size)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("write without explicit header implies 200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.Write([]byte("ok"))

		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("second WriteHeader is ignored", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK)

		assert.Equal(t, http.StatusNotFound, w.status)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
