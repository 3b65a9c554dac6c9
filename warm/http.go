package warm

import (
	"encoding/json"
	"net/http"
)

// TriggerHandler returns an HTTP handler that runs the warmer over the given
// catalogue and responds with the warm report as JSON.
//
//	POST /api/cache/warm
//
// The handler is operator-facing; wrap it with auth middleware before
// mounting.
func TriggerHandler(warmer *Warmer, catalogue []Scenario) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report := warmer.Warm(r.Context(), catalogue)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(report)
	}
}
