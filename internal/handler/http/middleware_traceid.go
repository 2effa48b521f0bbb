package http

import (
	"net/http"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a request-scoped logger carrying a trace_id field.
// An incoming X-Trace-ID header is reused; otherwise a UUIDv7 is generated.
// The trace ID is echoed back in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = h.traceIDs.Generate()
		}

		l := h.logger.WithTraceID(traceID)
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
