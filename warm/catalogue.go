package warm

import (
	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// Scenario describes one cache entry worth pre-populating.
type Scenario struct {
	// Name identifies the scenario in warm reports and logs.
	Name string

	// Operation is the documentation operation to invoke.
	Operation docs.Operation

	// Params are the operation parameters, shaped exactly as the live
	// request path would send them so keys collide with real traffic.
	Params map[string]any
}

// Request builds the request the live path would have produced for this
// scenario, so strategy and TTL computation match exactly.
func (s Scenario) Request() *docs.Request {
	return &docs.Request{
		Operation: s.Operation,
		Method:    docs.MethodPost,
		Payload:   s.Params,
	}
}

// DefaultCatalogue returns the fixed warm-up catalogue: the canonical
// incident archetypes plus the searches responders run most.
func DefaultCatalogue() []Scenario {
	return []Scenario{
		// Incident archetypes.
		incident("disk-full", "disk_space", "critical", "web-01", "web-02"),
		incident("memory-pressure", "high_memory", "high", "app-01"),
		incident("cpu-saturation", "high_cpu", "high", "app-02"),
		incident("service-down", "service_unavailable", "critical", "api-gateway"),
		incident("database-slow", "database_slow_queries", "high", "db-primary"),
		incident("network-partition", "network_unreachable", "critical", "dc-east", "dc-west"),
		incident("certificate-expiry", "ssl_cert_expiring", "medium", "edge-proxy"),
		incident("failed-deployment", "deployment_failure", "high", "app-01", "app-02"),
		incident("queue-backlog", "queue_depth", "high", "worker-pool"),
		incident("disk-io-degraded", "disk_io_latency", "medium", "db-replica"),

		// Canonical searches.
		search("kb-connection-pool", "database connection pool exhausted"),
		search("kb-pod-crashloop", "kubernetes pod crashloop"),
		search("kb-cert-renewal", "certificate renewal"),
		search("kb-disk-cleanup", "disk cleanup"),
		search("kb-oncall-handoff", "on-call handoff"),
	}
}

func incident(name, alertType, severity string, systems ...string) Scenario {
	affected := make([]any, len(systems))
	for i, s := range systems {
		affected[i] = s
	}
	return Scenario{
		Name:      name,
		Operation: docs.OpSearchRunbooks,
		Params: map[string]any{
			"alert_type":       alertType,
			"severity":         severity,
			"affected_systems": affected,
		},
	}
}

func search(name, query string) Scenario {
	return Scenario{
		Name:      name,
		Operation: docs.OpSearchKnowledgeBase,
		Params: map[string]any{
			"query": query,
		},
	}
}
