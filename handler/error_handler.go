package handler

import (
	"fmt"
	"net/http"

	"vidtube-api/common"

	"github.com/go-chi/chi/v5/middleware"
)

// AppHandler is a handler that reports failures instead of writing them.
type AppHandler func(http.ResponseWriter, *http.Request) *common.AppError

// ErrorHandlingMiddleware turns a returned *common.AppError or a panic into exactly one
// failure envelope. When the handler already wrote a response the failure is only logged.
func ErrorHandlingMiddleware(next AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		appErr := run(next, ww, r)
		if appErr == nil {
			return
		}

		appErr.Log(r)
		if ww.Status() != 0 {
			return
		}
		appErr.Send(ww)
	}
}

func run(next AppHandler, w http.ResponseWriter, r *http.Request) (appErr *common.AppError) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			appErr = common.Internal("Internal server error", fmt.Errorf("panic: %v", rec))
		}
	}()
	return next(w, r)
}
