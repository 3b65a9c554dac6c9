package cache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dpark2025/personal-pipeline-sub007/docs"
)

// maxEncodedParams bounds the encoded-parameter segment of a key.
const maxEncodedParams = 100

// KeyBuilder derives deterministic cache keys from an operation and its
// parameters.
//
// Contract:
// - Determinism: logically identical parameters produce the same key,
//   regardless of map iteration order.
// - Isolation: keys for distinct operations never collide; the operation
//   identifier is part of the key prefix.
// - Concurrency: implementations must be safe for concurrent use.
type KeyBuilder interface {
	// Key derives a cache key for the operation and parameter object.
	Key(op docs.Operation, params map[string]any) (string, error)
}

// DefaultKeyBuilder builds keys from canonicalized parameter JSON.
type DefaultKeyBuilder struct{}

// NewDefaultKeyBuilder creates a new default key builder.
func NewDefaultKeyBuilder() *DefaultKeyBuilder {
	return &DefaultKeyBuilder{}
}

// Key derives a deterministic, bounded-length cache key.
// Format: pp:cache:<op>:<enc>
// where enc is base64(canonical JSON(params)) truncated to 100 characters.
// Map keys are sorted recursively before encoding, so parameter order never
// changes the key.
func (b *DefaultKeyBuilder) Key(op docs.Operation, params map[string]any) (string, error) {
	canonical, err := canonicalize(params)
	if err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize params: %w", err)
	}

	enc := base64.StdEncoding.EncodeToString(canonical)
	if len(enc) > maxEncodedParams {
		enc = enc[:maxEncodedParams]
	}

	return fmt.Sprintf("pp:cache:%s:%s", sanitizeOperation(op), enc), nil
}

// sanitizeOperation reduces an operation name to [a-z0-9_-].
func sanitizeOperation(op docs.Operation) string {
	name := strings.ToLower(op.String())
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// canonicalize produces a deterministic JSON representation of the value.
// Maps are sorted by key; array order is preserved.
func canonicalize(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

// Ensure DefaultKeyBuilder implements KeyBuilder
var _ KeyBuilder = (*DefaultKeyBuilder)(nil)
