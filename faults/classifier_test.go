package faults

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// TestClassify_EscalationAlwaysCritical verifies every escalation-path
// failure is critical and escalation-required, whatever the cause.
func TestClassify_EscalationAlwaysCritical(t *testing.T) {
	causes := []error{
		errors.New("connection refused"),
		errors.New("timeout after 30s"),
		errors.New("validation failed: missing severity"),
		errors.New("contact list not found"),
		errors.New("something entirely novel"),
		nil,
	}

	for _, cause := range causes {
		d := Classify(docs.OpGetEscalationPath, cause, Context{})

		if d.Code != CodeEscalationPath {
			t.Errorf("Classify(escalation, %v).Code = %q, want %q", cause, d.Code, CodeEscalationPath)
		}
		if d.Severity != SeverityCritical {
			t.Errorf("Classify(escalation, %v).Severity = %q, want critical", cause, d.Severity)
		}
		if !d.EscalationRequired {
			t.Errorf("Classify(escalation, %v).EscalationRequired = false, want true", cause)
		}
		if d.BusinessImpact != SeverityCritical {
			t.Errorf("Classify(escalation, %v).BusinessImpact = %q, want critical", cause, d.BusinessImpact)
		}
	}
}

func TestClassify_RunbookSearch(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		reqCtx     Context
		wantCode   string
		wantStatus int
		wantRetry  bool
		wantImpact Severity
	}{
		{
			"validation error",
			errors.New("validation failed: alert_type required"),
			Context{},
			CodeValidationError, http.StatusBadRequest, false, SeverityLow,
		},
		{
			// Unlike every other branch, validation failures stay low
			// impact under a critical incident: the caller can fix the
			// request immediately.
			"validation error during critical incident",
			errors.New("validation failed: alert_type required"),
			Context{Severity: "critical"},
			CodeValidationError, http.StatusBadRequest, false, SeverityLow,
		},
		{
			"no results",
			errors.New("no results for alert type disk_space"),
			Context{},
			CodeNoResults, http.StatusNotFound, false, SeverityMedium,
		},
		{
			"no results during critical incident",
			errors.New("no matching runbooks"),
			Context{Severity: "critical"},
			CodeNoResults, http.StatusNotFound, false, SeverityCritical,
		},
		{
			"runbook not found",
			errors.New("runbook rb-42 not found"),
			Context{},
			CodeRunbookNotFound, http.StatusNotFound, false, SeverityMedium,
		},
		{
			"timeout",
			errors.New("context deadline exceeded"),
			Context{},
			CodeTimeout, http.StatusGatewayTimeout, true, SeverityMedium,
		},
		{
			"timeout during critical incident",
			errors.New("timeout after 30s"),
			Context{Severity: "critical"},
			CodeTimeout, http.StatusGatewayTimeout, true, SeverityCritical,
		},
		{
			"rate limited",
			errors.New("too many requests"),
			Context{},
			CodeRateLimited, http.StatusTooManyRequests, true, SeverityMedium,
		},
		{
			"source unavailable",
			errors.New("source confluence unavailable"),
			Context{},
			CodeSourceUnavailable, http.StatusServiceUnavailable, true, SeverityMedium,
		},
		{
			"unrecognized failure",
			errors.New("index shard corrupted"),
			Context{},
			CodeRunbookSearchFailed, http.StatusInternalServerError, true, SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(docs.OpSearchRunbooks, tt.err, tt.reqCtx)
			if d.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", d.Code, tt.wantCode)
			}
			if d.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", d.HTTPStatus, tt.wantStatus)
			}
			if d.RetryRecommended != tt.wantRetry {
				t.Errorf("RetryRecommended = %v, want %v", d.RetryRecommended, tt.wantRetry)
			}
			if d.BusinessImpact != tt.wantImpact {
				t.Errorf("BusinessImpact = %q, want %q", d.BusinessImpact, tt.wantImpact)
			}
			if len(d.RecoveryActions) == 0 {
				t.Error("RecoveryActions is empty")
			}
		})
	}
}

func TestClassify_NotFoundCodes(t *testing.T) {
	tests := []struct {
		op       docs.Operation
		wantCode string
	}{
		{docs.OpGetProcedure, CodeProcedureNotFound},
		{docs.OpGetDecisionTree, CodeDecisionTreeMissing},
	}

	for _, tt := range tests {
		d := Classify(tt.op, errors.New("entry not found"), Context{})
		if d.Code != tt.wantCode {
			t.Errorf("Classify(%s).Code = %q, want %q", tt.op, d.Code, tt.wantCode)
		}
		if d.HTTPStatus != http.StatusNotFound {
			t.Errorf("Classify(%s).HTTPStatus = %d, want 404", tt.op, d.HTTPStatus)
		}
	}
}

func TestClassify_GenericFallback(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"validation", errors.New("invalid source name"), CodeValidationError},
		{"timeout", errors.New("deadline exceeded"), CodeTimeout},
		{"rate limit", errors.New("rate limit exceeded"), CodeRateLimited},
		{"unavailable", errors.New("connection refused"), CodeSourceUnavailable},
		{"unknown", errors.New("inscrutable"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(docs.OpListSources, tt.err, Context{})
			if d.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", d.Code, tt.wantCode)
			}
		})
	}
}

func TestClassify_NilError(t *testing.T) {
	d := Classify(docs.OpSearchKnowledgeBase, nil, Context{})
	if d.Code != CodeUnknown {
		t.Errorf("Code = %q, want %q", d.Code, CodeUnknown)
	}
	if d.Message != "unknown failure" {
		t.Errorf("Message = %q, want %q", d.Message, "unknown failure")
	}
}

// TestClassify_StatusesWithinAllowedSet verifies the classifier only emits
// statuses a client of this API is documented to handle.
func TestClassify_StatusesWithinAllowedSet(t *testing.T) {
	allowed := map[int]bool{
		http.StatusBadRequest:          true,
		http.StatusNotFound:            true,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
	}

	errs := []error{
		nil,
		errors.New("validation failed"),
		errors.New("not found"),
		errors.New("no results"),
		errors.New("timeout"),
		errors.New("rate limit"),
		errors.New("unavailable"),
		errors.New("anything else"),
	}

	for _, op := range docs.Operations() {
		for _, err := range errs {
			d := Classify(op, err, Context{})
			if !allowed[d.HTTPStatus] {
				t.Errorf("Classify(%s, %v).HTTPStatus = %d, outside allowed set", op, err, d.HTTPStatus)
			}
		}
	}
}

func TestDescriptor_WriteJSON(t *testing.T) {
	d := Classify(docs.OpSearchRunbooks, errors.New("runbook rb-1 not found"), Context{})

	rec := httptest.NewRecorder()
	d.WriteJSON(rec)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body struct {
		Error Descriptor `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != CodeRunbookNotFound {
		t.Errorf("body error code = %q, want %q", body.Error.Code, CodeRunbookNotFound)
	}
}
