package faults

import (
	"net/http"
	"strings"

	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// Context carries the request attributes the classifier may weigh in
// addition to the raw error. It travels with the call; the classifier keeps
// no state between failures.
type Context struct {
	// Severity is the severity declared in the failing request, if any.
	Severity string

	// CorrelationID identifies the failing request in logs.
	CorrelationID string
}

// Classify maps a raw downstream failure to a structured descriptor.
//
// Dispatch is by operation: each operation has its own rule set matching
// substrings of the stable error-message surface. Unrecognized operations
// fall back to generic validation/timeout checks. Classify is total - any
// (operation, error, context) combination yields a descriptor, including a
// nil error.
func Classify(op docs.Operation, err error, reqCtx Context) Descriptor {
	msg := "unknown failure"
	if err != nil {
		msg = err.Error()
	}
	lower := strings.ToLower(msg)

	switch op {
	case docs.OpGetEscalationPath:
		return classifyEscalationPath(msg)
	case docs.OpSearchRunbooks:
		return classifyRunbookSearch(msg, lower, reqCtx)
	case docs.OpGetProcedure:
		return classifyProcedure(msg, lower)
	case docs.OpGetDecisionTree:
		return classifyDecisionTree(msg, lower)
	default:
		return classifyGeneric(msg, lower)
	}
}

// classifyEscalationPath treats every escalation-path failure as critical:
// failure to escalate is itself an incident, whatever the underlying cause.
func classifyEscalationPath(msg string) Descriptor {
	return Descriptor{
		Code:       CodeEscalationPath,
		Message:    msg,
		Severity:   SeverityCritical,
		HTTPStatus: http.StatusInternalServerError,
		RecoveryActions: []string{
			"Use the fallback escalation contact list",
			"Page the on-call manager directly",
			"Notify the incident commander that automated escalation is down",
		},
		RetryRecommended:   true,
		EscalationRequired: true,
		BusinessImpact:     SeverityCritical,
	}
}

func classifyRunbookSearch(msg, lower string, reqCtx Context) Descriptor {
	impact := SeverityMedium
	if reqCtx.Severity == "critical" {
		impact = SeverityCritical
	}

	switch {
	case containsAny(lower, "validation", "invalid"):
		// Malformed requests are caller mistakes, fixable on the spot;
		// incident severity does not raise their business impact.
		return validationDescriptor(msg)

	case containsAny(lower, "no results", "no matching"):
		return Descriptor{
			Code:       CodeNoResults,
			Message:    msg,
			Severity:   SeverityMedium,
			HTTPStatus: http.StatusNotFound,
			RecoveryActions: []string{
				"Broaden the alert characteristics in the search",
				"Search the knowledge base directly",
				"Escalate manually if the incident is critical",
			},
			RetryRecommended:   false,
			EscalationRequired: false,
			BusinessImpact:     impact,
		}

	case strings.Contains(lower, "not found"):
		return Descriptor{
			Code:       CodeRunbookNotFound,
			Message:    msg,
			Severity:   SeverityMedium,
			HTTPStatus: http.StatusNotFound,
			RecoveryActions: []string{
				"Verify the runbook identifier",
				"List available runbooks for the alert type",
			},
			RetryRecommended:   false,
			EscalationRequired: false,
			BusinessImpact:     impact,
		}

	case containsAny(lower, "timeout", "deadline"):
		d := timeoutDescriptor(msg)
		d.BusinessImpact = impact
		return d

	case containsAny(lower, "rate limit", "too many requests"):
		d := rateLimitDescriptor(msg)
		d.BusinessImpact = impact
		return d

	case containsAny(lower, "unavailable", "connection refused"):
		d := unavailableDescriptor(msg)
		d.BusinessImpact = impact
		return d

	default:
		return Descriptor{
			Code:       CodeRunbookSearchFailed,
			Message:    msg,
			Severity:   SeverityHigh,
			HTTPStatus: http.StatusInternalServerError,
			RecoveryActions: []string{
				"Retry the search",
				"Check documentation source health",
				"Fall back to a knowledge base search",
			},
			RetryRecommended:   true,
			EscalationRequired: false,
			BusinessImpact:     impact,
		}
	}
}

func classifyProcedure(msg, lower string) Descriptor {
	if strings.Contains(lower, "not found") {
		return Descriptor{
			Code:       CodeProcedureNotFound,
			Message:    msg,
			Severity:   SeverityMedium,
			HTTPStatus: http.StatusNotFound,
			RecoveryActions: []string{
				"Verify the procedure identifier",
				"Retrieve the parent runbook for the full step list",
			},
			RetryRecommended:   false,
			EscalationRequired: false,
			BusinessImpact:     SeverityMedium,
		}
	}
	return classifyGeneric(msg, lower)
}

func classifyDecisionTree(msg, lower string) Descriptor {
	if strings.Contains(lower, "not found") {
		return Descriptor{
			Code:       CodeDecisionTreeMissing,
			Message:    msg,
			Severity:   SeverityMedium,
			HTTPStatus: http.StatusNotFound,
			RecoveryActions: []string{
				"Verify the scenario name",
				"Fall back to the runbook decision section",
			},
			RetryRecommended:   false,
			EscalationRequired: false,
			BusinessImpact:     SeverityMedium,
		}
	}
	return classifyGeneric(msg, lower)
}

// classifyGeneric covers operations without a dedicated rule set using
// lightweight substring checks.
func classifyGeneric(msg, lower string) Descriptor {
	switch {
	case containsAny(lower, "validation", "invalid"):
		return validationDescriptor(msg)
	case containsAny(lower, "timeout", "deadline"):
		return timeoutDescriptor(msg)
	case containsAny(lower, "rate limit", "too many requests"):
		return rateLimitDescriptor(msg)
	case containsAny(lower, "unavailable", "connection refused"):
		return unavailableDescriptor(msg)
	default:
		return Descriptor{
			Code:       CodeUnknown,
			Message:    msg,
			Severity:   SeverityMedium,
			HTTPStatus: http.StatusInternalServerError,
			RecoveryActions: []string{
				"Retry the request",
				"Check service health if the failure persists",
			},
			RetryRecommended:   true,
			EscalationRequired: false,
			BusinessImpact:     SeverityMedium,
		}
	}
}

func validationDescriptor(msg string) Descriptor {
	return Descriptor{
		Code:       CodeValidationError,
		Message:    msg,
		Severity:   SeverityLow,
		HTTPStatus: http.StatusBadRequest,
		RecoveryActions: []string{
			"Check the request parameters against the operation schema",
		},
		RetryRecommended:   false,
		EscalationRequired: false,
		BusinessImpact:     SeverityLow,
	}
}

func timeoutDescriptor(msg string) Descriptor {
	return Descriptor{
		Code:       CodeTimeout,
		Message:    msg,
		Severity:   SeverityMedium,
		HTTPStatus: http.StatusGatewayTimeout,
		RecoveryActions: []string{
			"Retry with backoff",
			"Check documentation source latency",
		},
		RetryRecommended:   true,
		EscalationRequired: false,
		BusinessImpact:     SeverityMedium,
	}
}

func rateLimitDescriptor(msg string) Descriptor {
	return Descriptor{
		Code:       CodeRateLimited,
		Message:    msg,
		Severity:   SeverityMedium,
		HTTPStatus: http.StatusTooManyRequests,
		RecoveryActions: []string{
			"Back off and retry after the rate limit window",
		},
		RetryRecommended:   true,
		EscalationRequired: false,
		BusinessImpact:     SeverityMedium,
	}
}

func unavailableDescriptor(msg string) Descriptor {
	return Descriptor{
		Code:       CodeSourceUnavailable,
		Message:    msg,
		Severity:   SeverityHigh,
		HTTPStatus: http.StatusServiceUnavailable,
		RecoveryActions: []string{
			"Retry once the source recovers",
			"Serve cached content where available",
		},
		RetryRecommended:   true,
		EscalationRequired: false,
		BusinessImpact:     SeverityHigh,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
