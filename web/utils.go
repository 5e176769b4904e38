package web

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// CustomResponseWriter allows to store current status code of ResponseWriter.
type CustomResponseWriter struct {
	http.ResponseWriter
	Status int
}

func (w *CustomResponseWriter) WriteHeader(statusCode int) {
	// set w.Status then forward to inner ResposeWriter
	w.Status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func NilHandler(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte{})
}

func WrapCustomRW(wr http.ResponseWriter) *CustomResponseWriter {
	if cw, ok := wr.(*CustomResponseWriter); ok {
		return cw
	}
	return &CustomResponseWriter{
		ResponseWriter: wr,
		Status:         http.StatusOK, // defaults to ok, some handlers might not call wr.WriteHeader at all
	}
}

// Logger logs every request to handler when verbose is set.
func Logger(handler http.Handler, name string, log *zap.Logger, verbose bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		cw := WrapCustomRW(w)
		handler.ServeHTTP(cw, r)
		if verbose {
			log.Info(name,
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", cw.Status),
				zap.String("forwarded_for", r.Header.Get("X-FORWARDED-FOR")),
				zap.String("agent", r.Header.Get("USER-AGENT")),
				zap.Duration("took", time.Since(t0)))
		}
	})
}
