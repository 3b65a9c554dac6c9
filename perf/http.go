package perf

import (
	"encoding/json"
	"net/http"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
)

// StatsProvider exposes the counter snapshot to analyze. cache.StatsStore
// satisfies it.
type StatsProvider interface {
	Counters() cache.Counters
}

// Handler returns an HTTP handler serving the performance report as JSON.
//
//	GET /api/performance
func Handler(stats StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report := Analyze(stats.Counters())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(report)
	}
}
