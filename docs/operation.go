package docs

// Operation identifies one of the documentation tools this layer fronts.
// The set is closed: switches over Operation can be checked for
// exhaustiveness, unlike substring dispatch on raw names.
type Operation int

const (
	// OpUnknown is the zero value for unrecognized operation names.
	OpUnknown Operation = iota

	// OpSearchRunbooks searches runbooks by alert characteristics.
	OpSearchRunbooks
	// OpGetDecisionTree retrieves a decision tree for a scenario.
	OpGetDecisionTree
	// OpGetProcedure retrieves a step-by-step procedure.
	OpGetProcedure
	// OpGetEscalationPath retrieves escalation contacts for an incident.
	OpGetEscalationPath
	// OpListSources lists the configured documentation sources.
	OpListSources
	// OpSearchKnowledgeBase runs a free-text search across all sources.
	OpSearchKnowledgeBase
	// OpRecordFeedback records resolution feedback. It mutates downstream
	// state and is never cached.
	OpRecordFeedback
	// OpHealthCheck reports the health of the documentation sources.
	OpHealthCheck
	// OpGetMetrics reports tool-layer performance metrics.
	OpGetMetrics
)

var operationNames = map[Operation]string{
	OpUnknown:             "unknown",
	OpSearchRunbooks:      "search_runbooks",
	OpGetDecisionTree:     "get_decision_tree",
	OpGetProcedure:        "get_procedure",
	OpGetEscalationPath:   "get_escalation_path",
	OpListSources:         "list_sources",
	OpSearchKnowledgeBase: "search_knowledge_base",
	OpRecordFeedback:      "record_resolution_feedback",
	OpHealthCheck:         "health_check",
	OpGetMetrics:          "get_performance_metrics",
}

// String returns the wire name of the operation.
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOperation maps a wire name to an Operation.
// Unrecognized names map to OpUnknown; parsing is total.
func ParseOperation(name string) Operation {
	for op, n := range operationNames {
		if n == name {
			return op
		}
	}
	return OpUnknown
}

// Mutating reports whether the operation changes downstream state.
// Mutating operations must never be served from or written to the cache.
func (o Operation) Mutating() bool {
	return o == OpRecordFeedback
}

// Operations returns all known operations in a stable order,
// excluding OpUnknown.
func Operations() []Operation {
	return []Operation{
		OpSearchRunbooks,
		OpGetDecisionTree,
		OpGetProcedure,
		OpGetEscalationPath,
		OpListSources,
		OpSearchKnowledgeBase,
		OpRecordFeedback,
		OpHealthCheck,
		OpGetMetrics,
	}
}
