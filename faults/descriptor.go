package faults

import (
	"encoding/json"
	"net/http"
)

// Severity grades how bad a failure is, for both operational alerting
// (Severity) and stakeholder communication (BusinessImpact).
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Error codes in the classification taxonomy. The set is extensible per
// operation; these are the codes every deployment understands.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNoResults           = "NO_RESULTS"
	CodeRunbookNotFound     = "RUNBOOK_NOT_FOUND"
	CodeProcedureNotFound   = "PROCEDURE_NOT_FOUND"
	CodeDecisionTreeMissing = "DECISION_TREE_NOT_FOUND"
	CodeTimeout             = "TIMEOUT_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeSourceUnavailable   = "SOURCE_UNAVAILABLE"
	CodeEscalationPath      = "ESCALATION_PATH_ERROR"
	CodeRunbookSearchFailed = "RUNBOOK_SEARCH_FAILED"
	CodeUnknown             = "UNKNOWN_ERROR"
)

// Descriptor is the structured classification of one failure. It is created
// fresh per failure and never persisted. The boundary surfaces HTTPStatus,
// Message, and RecoveryActions verbatim to the client and logs Severity and
// EscalationRequired for alerting.
type Descriptor struct {
	Code               string   `json:"code"`
	Message            string   `json:"message"`
	Severity           Severity `json:"severity"`
	HTTPStatus         int      `json:"http_status"`
	RecoveryActions    []string `json:"recovery_actions"`
	RetryRecommended   bool     `json:"retry_recommended"`
	EscalationRequired bool     `json:"escalation_required"`
	BusinessImpact     Severity `json:"business_impact"`
}

// WriteJSON writes the descriptor as the HTTP error response.
func (d Descriptor) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.HTTPStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": d})
}
