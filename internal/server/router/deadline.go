package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DailyNotificationsPath is the function route that runs the digest inline.
const DailyNotificationsPath = "/functions/daily-notifications"

// WithWriteTimeouts extends the server write deadline for the listed paths.
// Other requests keep the deadline of the http.Server.
func WithWriteTimeouts(next http.Handler, timeouts map[string]time.Duration, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d, ok := timeouts[r.URL.Path]; ok {
			if err := http.NewResponseController(w).SetWriteDeadline(time.Now().Add(d)); err != nil {
				logger.Warn("cannot extend write deadline", zap.String("path", r.URL.Path), zap.Error(err))
			}
		}
		next.ServeHTTP(w, r)
	})
}
