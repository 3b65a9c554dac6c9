package warm

import (
	"testing"

	"github.com/dpark2025/personal-pipeline-sub007/cache"
	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

func TestDefaultCatalogue(t *testing.T) {
	catalogue := DefaultCatalogue()

	if len(catalogue) != 15 {
		t.Fatalf("len(DefaultCatalogue()) = %d, want 15", len(catalogue))
	}

	seen := make(map[string]bool, len(catalogue))
	keys := cache.NewDefaultKeyBuilder()
	for _, scenario := range catalogue {
		if scenario.Name == "" {
			t.Error("scenario with empty name")
		}
		if seen[scenario.Name] {
			t.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true

		if scenario.Operation != docs.OpSearchRunbooks && scenario.Operation != docs.OpSearchKnowledgeBase {
			t.Errorf("scenario %q uses operation %s, want a search operation", scenario.Name, scenario.Operation)
		}

		// Every catalogue entry must be keyable, or warming can never work.
		if _, err := keys.Key(scenario.Operation, scenario.Params); err != nil {
			t.Errorf("scenario %q is unkeyable: %v", scenario.Name, err)
		}
	}
}

func TestScenario_Request(t *testing.T) {
	scenario := Scenario{
		Name:      "disk-full",
		Operation: docs.OpSearchRunbooks,
		Params: map[string]any{
			"alert_type": "disk_space",
			"severity":   "critical",
		},
	}

	req := scenario.Request()
	if req.Operation != docs.OpSearchRunbooks {
		t.Errorf("Operation = %v, want OpSearchRunbooks", req.Operation)
	}
	if req.Method != docs.MethodPost {
		t.Errorf("Method = %v, want POST", req.Method)
	}
	if req.Severity() != "critical" {
		t.Errorf("Severity() = %q, want critical", req.Severity())
	}

	// The scenario request must classify as the live path would.
	if got := cache.Classify(req); got != cache.StrategyCriticalIncident {
		t.Errorf("Classify() = %q, want %q", got, cache.StrategyCriticalIncident)
	}
}
