package recoverer

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"waitlist/internal/core/domain/logging"
	"waitlist/internal/http/handlers/response"
)

// Recover turns a panic in next into a logged, JSON-shaped 500 so callers
// never see a dropped connection or an unstructured body.
func Recover(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error(
					r.Context(),
					"Unhandled panic while serving request.",
					logging.Entry("path", r.URL.Path),
					logging.Entry("panic", fmt.Sprint(rec)),
					logging.Entry("stack", string(debug.Stack())),
				)
				response.RenderInternalError(rw)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
