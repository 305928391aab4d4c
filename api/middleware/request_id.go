package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tillpointhq/tillpoint-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// Till clients send their own correlation ids so a front-of-house trace can
// be matched against server logs. Anything longer than this is treated as
// garbage and replaced.
const maxRequestIDLength = 64

// RequestID tags the request with a correlation id, echoes it back in the
// response header, and seeds it into the context logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
