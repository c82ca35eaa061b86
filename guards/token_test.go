package guards

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	navguard "github.com/routewise/navguard"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "navguard-test",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}
	return token
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()

	v, err := NewVerifier(TokenConfig{
		SigningMethod: MethodHS256,
		Key:           testSecret,
		Issuer:        "navguard-test",
	})
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return v
}

func runGuard(t *testing.T, guard navguard.Handler, ctx context.Context) (any, error) {
	t.Helper()

	pipeline, err := navguard.New().WithGlobal(guard).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer pipeline.Close()

	return pipeline.Run(ctx, &navguard.Location{Path: "/admin"}, &navguard.Location{Path: "/"})
}

func TestRequireTokenValidTokenContinues(t *testing.T) {
	login := &navguard.Location{Name: "login"}
	guard := RequireToken(newTestVerifier(t), login)

	ctx := navguard.WithAccessToken(context.Background(), signedToken(t, time.Minute))
	outcome, err := runGuard(t, guard, ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != nil {
		t.Fatalf("expected navigation to proceed, got %v", outcome)
	}
}

func TestRequireTokenMissingTokenRedirects(t *testing.T) {
	login := &navguard.Location{Name: "login"}
	guard := RequireToken(newTestVerifier(t), login)

	outcome, err := runGuard(t, guard, context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != any(login) {
		t.Fatalf("expected redirect to login, got %v", outcome)
	}
}

func TestRequireTokenExpiredTokenRedirects(t *testing.T) {
	login := &navguard.Location{Name: "login"}
	guard := RequireToken(newTestVerifier(t), login)

	ctx := navguard.WithAccessToken(context.Background(), signedToken(t, -time.Minute))
	outcome, err := runGuard(t, guard, ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != any(login) {
		t.Fatalf("expected redirect to login, got %v", outcome)
	}
}

func TestRequireTokenWrongKeyRedirects(t *testing.T) {
	login := &navguard.Location{Name: "login"}

	other, err := NewVerifier(TokenConfig{
		SigningMethod: MethodHS256,
		Key:           []byte("another-secret-another-secret!!!"),
		Issuer:        "navguard-test",
	})
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	guard := RequireToken(other, login)

	ctx := navguard.WithAccessToken(context.Background(), signedToken(t, time.Minute))
	outcome, err := runGuard(t, guard, ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != any(login) {
		t.Fatalf("expected redirect to login, got %v", outcome)
	}
}

func TestRequireTokenStoresClaims(t *testing.T) {
	verifier := newTestVerifier(t)
	login := &navguard.Location{Name: "login"}

	var subject string
	inspect := func(ctx context.Context, nav *navguard.Context) (any, error) {
		v, ok := nav.Get(ClaimsKey)
		if !ok {
			t.Fatal("expected claims in navigation store")
		}
		claims, ok := v.(*jwt.RegisteredClaims)
		if !ok {
			t.Fatalf("unexpected claims type %T", v)
		}
		subject = claims.Subject
		return nav.Next(), nil
	}

	pipeline, err := navguard.New().
		WithGlobal(RequireToken(verifier, login), inspect).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer pipeline.Close()

	ctx := navguard.WithAccessToken(context.Background(), signedToken(t, time.Minute))
	if _, err := pipeline.Run(ctx, &navguard.Location{Path: "/admin"}, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", subject)
	}
}

func TestNewVerifierRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  TokenConfig
	}{
		{"missing secret", TokenConfig{SigningMethod: MethodHS256}},
		{"short ed25519 key", TokenConfig{SigningMethod: MethodEd25519, Key: []byte("short")}},
		{"unknown method", TokenConfig{SigningMethod: "rs256", Key: testSecret}},
		{"excessive leeway", TokenConfig{SigningMethod: MethodHS256, Key: testSecret, Leeway: time.Hour}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewVerifier(tc.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}
