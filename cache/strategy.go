package cache

import (
	"strings"

	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// Strategy is a named caching policy bucket. It determines the base TTL and
// warm-up eligibility of an entry; it carries no state of its own.
type Strategy string

const (
	StrategyCriticalIncident     Strategy = "critical_incident"
	StrategyHighPriorityIncident Strategy = "high_priority_incident"
	StrategyBusinessCritical     Strategy = "business_critical_query"
	StrategyComplexQuery         Strategy = "complex_query"
	StrategySimpleQuery          Strategy = "simple_query"
	StrategyDecisionLogic        Strategy = "decision_logic"
	StrategyProcedureSteps       Strategy = "procedure_steps"
	StrategyMetadata             Strategy = "metadata"
	StrategyAnalytics            Strategy = "analytics"
	StrategyStandard             Strategy = "standard"
)

// Strategies returns all strategies in a stable order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyCriticalIncident,
		StrategyHighPriorityIncident,
		StrategyBusinessCritical,
		StrategyComplexQuery,
		StrategySimpleQuery,
		StrategyDecisionLogic,
		StrategyProcedureSteps,
		StrategyMetadata,
		StrategyAnalytics,
		StrategyStandard,
	}
}

// querySpecialChars are characters that mark a free-text query as complex.
const querySpecialChars = `*?"'&<>`

// businessCriticalTerms are query terms indicating production-impacting
// urgency.
var businessCriticalTerms = []string{"critical", "emergency", "production", "outage", "down"}

// Classify maps a request to exactly one caching strategy.
//
// It is pure and total: identical requests always classify identically, and
// every request maps to a strategy (StrategyStandard as the default). Rules
// are evaluated in order; the first match wins.
func Classify(req *docs.Request) Strategy {
	if req == nil {
		return StrategyStandard
	}

	switch req.Operation {
	case docs.OpSearchRunbooks, docs.OpGetEscalationPath:
		// Runbook and escalation retrieval serve active incidents.
		if req.Severity() == "critical" {
			return StrategyCriticalIncident
		}
		return StrategyHighPriorityIncident

	case docs.OpSearchKnowledgeBase:
		return classifyQuery(req.QueryText())

	case docs.OpGetDecisionTree:
		return StrategyDecisionLogic

	case docs.OpGetProcedure:
		return StrategyProcedureSteps

	case docs.OpListSources, docs.OpHealthCheck:
		return StrategyMetadata

	case docs.OpGetMetrics:
		return StrategyAnalytics

	case docs.OpRecordFeedback, docs.OpUnknown:
		return StrategyStandard
	}

	return StrategyStandard
}

// classifyQuery inspects the shape of a free-text search query.
func classifyQuery(query string) Strategy {
	if isComplexQuery(query) {
		return StrategyComplexQuery
	}

	lower := strings.ToLower(query)
	for _, term := range businessCriticalTerms {
		if strings.Contains(lower, term) {
			return StrategyBusinessCritical
		}
	}

	return StrategySimpleQuery
}

// isComplexQuery reports whether the query is long, contains special
// characters, or has more than three terms.
func isComplexQuery(query string) bool {
	if len(query) > 50 {
		return true
	}
	if strings.ContainsAny(query, querySpecialChars) {
		return true
	}
	return len(strings.Fields(query)) > 3
}
