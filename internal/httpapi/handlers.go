package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fairyhunter13/order-ticket-bot/internal/obs"
)

// App holds the state served on the ops endpoint.
type App struct {
	Metrics *obs.Metrics
	started time.Time
}

// NewApp constructs an App.
func NewApp(m *obs.Metrics) *App {
	return &App{Metrics: m, started: time.Now()}
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"uptime_sec": time.Since(a.started).Seconds(),
	})
}
