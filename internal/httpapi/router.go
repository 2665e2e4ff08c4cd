package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers ops routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", app.healthHandler)
	mux.Handle("/metrics", app.Metrics.Handler())
	mux.Handle("/debug/vars", expvar.Handler())
	return WithRequestID(WithLogging(mux))
}
