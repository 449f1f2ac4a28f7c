package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Pools keep gzip state out of the per-request allocation path; the mocked
// surface is often hammered by load-test style clients.
var (
	gzipWriterPool = sync.Pool{
		New: func() any { return gzip.NewWriter(io.Discard) },
	}

	gzipReaderPool = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip transparently inflates gzip-encoded request bodies and compresses
// responses for clients that advertise gzip support.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			if !inflateRequestBody(w, r) {
				return
			}
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)

		gw := &gzipResponseWriter{ResponseWriter: w, gzipWriter: zw}
		next.ServeHTTP(gw, r)
		gw.finish()

		gzipWriterPool.Put(zw)
	})
}

// inflateRequestBody swaps the request body for an inflating reader. On
// malformed gzip data it answers 400 and reports false.
func inflateRequestBody(w http.ResponseWriter, r *http.Request) bool {
	zr := gzipReaderPool.Get().(*gzip.Reader)
	if err := zr.Reset(r.Body); err != nil {
		gzipReaderPool.Put(zr)
		http.Error(w, "invalid gzip data", http.StatusBadRequest)
		return false
	}

	r.Body = &pooledBodyReader{reader: zr, underlying: r.Body}
	r.Header.Del("Content-Encoding")

	return true
}

// pooledBodyReader reads through a pooled gzip.Reader and returns it to the
// pool when the body is closed.
type pooledBodyReader struct {
	reader     *gzip.Reader
	underlying io.Closer
	closed     bool
}

func (b *pooledBodyReader) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *pooledBodyReader) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	b.reader.Close()
	gzipReaderPool.Put(b.reader)

	return b.underlying.Close()
}

// gzipResponseWriter compresses the response body, deciding lazily: the
// status is held back until the first Write, so a body-less response (204
// from DELETE or reset) goes out unencoded instead of carrying an empty
// gzip frame.
type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer

	status    int
	wroteBody bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteBody {
		w.wroteBody = true
		w.Header().Set("Content-Encoding", "gzip")

		status := w.status
		if status == 0 {
			status = http.StatusOK
		}
		w.ResponseWriter.WriteHeader(status)
	}

	return w.gzipWriter.Write(data)
}

// finish flushes the compressed stream, or forwards the bare status when the
// handler never wrote a body.
func (w *gzipResponseWriter) finish() {
	if w.wroteBody {
		w.gzipWriter.Close()
		return
	}

	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
}
