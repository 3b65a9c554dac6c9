package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ValidatorConfig configures the operator-token validator.
type ValidatorConfig struct {
	// Key is the HMAC signing key. Required.
	Key []byte

	// Issuer is the expected iss claim. Empty skips the check.
	Issuer string

	// Audience is the expected aud claim. Empty skips the check.
	Audience string
}

// Identity is the authenticated operator.
type Identity struct {
	// Principal is the sub claim.
	Principal string

	// Claims are the raw token claims.
	Claims map[string]any
}

// Validator validates HS256 operator tokens.
type Validator struct {
	config ValidatorConfig
}

// NewValidator creates a validator for the given configuration.
func NewValidator(config ValidatorConfig) (*Validator, error) {
	if len(config.Key) == 0 {
		return nil, errors.New("auth: signing key is required")
	}
	return &Validator{config: config}, nil
}

// Validate parses and validates a raw token string.
func (v *Validator) Validate(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingCredentials
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return v.config.Key, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrInvalidCredentials
		}
	}
	if !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	identity := &Identity{Claims: claims}
	if sub, ok := claims["sub"].(string); ok {
		identity.Principal = sub
	}
	return identity, nil
}
