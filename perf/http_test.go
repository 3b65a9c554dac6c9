package perf

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
)

type fixedStats struct {
	counters cache.Counters
}

func (f fixedStats) Counters() cache.Counters { return f.counters }

func TestHandler(t *testing.T) {
	handler := Handler(fixedStats{counters: cache.Counters{Hits: 90, Misses: 10}})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/performance", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.HitRate != 90.0 {
		t.Errorf("HitRate = %v, want 90.0", report.HitRate)
	}
	if report.PerformanceImpact != ImpactExcellent {
		t.Errorf("PerformanceImpact = %q, want %q", report.PerformanceImpact, ImpactExcellent)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	handler := Handler(fixedStats{})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/performance", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
