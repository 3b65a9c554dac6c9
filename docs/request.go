package docs

// Method is the HTTP method the boundary received the request with.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Request is a single operation request as parsed and validated by the HTTP
// boundary. It is immutable for the lifetime of the request; all cache and
// classification components read from it and never write to it.
type Request struct {
	// Operation is the target documentation operation.
	Operation Operation

	// Method is the HTTP method of the inbound request.
	Method Method

	// Path is the request path as received by the boundary.
	Path string

	// Payload is the decoded request body (may be nil for GET requests).
	Payload map[string]any

	// Query holds the URL query parameters.
	Query map[string]string

	// CorrelationID ties log lines and spans for this request together.
	// It travels with the request rather than through any shared state.
	CorrelationID string
}

// Severity returns the severity declared in the payload, or "" if absent.
func (r *Request) Severity() string {
	if r == nil || r.Payload == nil {
		return ""
	}
	s, _ := r.Payload["severity"].(string)
	return s
}

// MaxResults returns the requested result limit, or 0 if absent.
// JSON numbers decode as float64; integer payloads built in-process are
// accepted too.
func (r *Request) MaxResults() int {
	if r == nil || r.Payload == nil {
		return 0
	}
	switch v := r.Payload["max_results"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// AffectedSystems returns the systems listed in the payload, if any.
func (r *Request) AffectedSystems() []string {
	if r == nil || r.Payload == nil {
		return nil
	}
	switch v := r.Payload["affected_systems"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// QueryText returns the free-text search query for search operations.
// The payload takes precedence over the URL query parameter.
func (r *Request) QueryText() string {
	if r == nil {
		return ""
	}
	if r.Payload != nil {
		if q, ok := r.Payload["query"].(string); ok && q != "" {
			return q
		}
	}
	if r.Query != nil {
		return r.Query["query"]
	}
	return ""
}

// Params returns the parameter object used for cache key derivation:
// the payload for POST requests, the query parameters otherwise.
func (r *Request) Params() map[string]any {
	if r == nil {
		return nil
	}
	if len(r.Payload) > 0 {
		return r.Payload
	}
	if len(r.Query) == 0 {
		return nil
	}
	params := make(map[string]any, len(r.Query))
	for k, v := range r.Query {
		params[k] = v
	}
	return params
}
