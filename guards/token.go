package guards

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	navguard "github.com/routewise/navguard"
)

// SigningMethod selects the token verification algorithm.
type SigningMethod string

const (
	// MethodEd25519 verifies EdDSA tokens against an ed25519 public key.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 verifies HMAC-SHA256 tokens against a shared secret.
	MethodHS256 SigningMethod = "hs256"
)

// TokenConfig configures a [Verifier].
type TokenConfig struct {
	SigningMethod SigningMethod
	// Key is the HS256 shared secret or the raw 32-byte ed25519 public key,
	// depending on SigningMethod.
	Key      []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Verifier checks access tokens for [RequireToken]. Construction validates
// the key material once; Verify itself does no allocation beyond the parsed
// claims.
type Verifier struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
}

// NewVerifier builds a token verifier from cfg.
func NewVerifier(cfg TokenConfig) (*Verifier, error) {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	var (
		alg string
		key any
	)
	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Key) == 0 {
			return nil, errors.New("hs256 requires a shared secret")
		}
		alg = jwt.SigningMethodHS256.Alg()
		key = cfg.Key
	case MethodEd25519:
		if len(cfg.Key) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("ed25519 public key must be %d bytes", ed25519.PublicKeySize)
		}
		alg = jwt.SigningMethodEdDSA.Alg()
		key = ed25519.PublicKey(cfg.Key)
	default:
		return nil, errors.New("unsupported signing method")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Verifier{
		parser: jwt.NewParser(opts...),
		keyfunc: func(*jwt.Token) (any, error) {
			return key, nil
		},
	}, nil
}

// Verify parses and validates a token string, returning its registered
// claims.
func (v *Verifier) Verify(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, v.keyfunc)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// RequireToken returns a guard that verifies the bearer token attached to
// the request context with [navguard.WithAccessToken]. A missing or invalid
// token redirects the navigation to login; a valid one stores the verified
// claims in the navigation scratch store under [ClaimsKey] and continues.
func RequireToken(verifier *Verifier, login any) navguard.Handler {
	return func(ctx context.Context, nav *navguard.Context) (any, error) {
		if verifier == nil {
			return nav.Redirect(login), nil
		}

		token, ok := navguard.AccessTokenFromContext(ctx)
		if !ok {
			return nav.Redirect(login), nil
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return nav.Redirect(login), nil
		}

		nav.Set(ClaimsKey, claims)
		return nav.Next(), nil
	}
}

// ClaimsKey is the navigation scratch-store key under which RequireToken
// stores the verified *jwt.RegisteredClaims for downstream guards.
const ClaimsKey = "guards.claims"
