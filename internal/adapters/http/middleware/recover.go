package middleware

import (
	"net/http"
	"runtime/debug"

	"usermgmt/internal/adapters/http/response"
	"usermgmt/internal/logger"
)

func Recover(log logger.Logger, writer response.ResponseWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("http: panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"request_id", RequestIDFromContext(r.Context()),
					"stack", string(debug.Stack()),
				)
				writer.WriteError(w, http.StatusInternalServerError, response.MsgInternalError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
