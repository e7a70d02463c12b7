package identity

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt"

	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

var ErrInvalidToken = errors.New("token is not valid")

// OIDCVerifier validates tokens against the identity provider's JWKS
// endpoint (Cognito user pools publish one per pool issuer).
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer and prepares a verifier. When
// clientID is empty the audience check is skipped; Cognito access tokens
// carry the app client in a non-standard claim.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":  err,
			"issuer": issuer,
		}).Error("Failed to discover OIDC provider")
		return nil, err
	}

	cfg := &oidc.Config{ClientID: clientID}
	if clientID == "" {
		cfg.SkipClientIDCheck = true
	}
	return &OIDCVerifier{verifier: provider.Verifier(cfg)}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, token string) (string, error) {
	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return idToken.Subject, nil
}

// HMACVerifier validates locally issued HS256 tokens. It exists for
// development environments without a reachable identity provider.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

var (
	_ repository.ITokenVerifier = (*OIDCVerifier)(nil)
	_ repository.ITokenVerifier = (*HMACVerifier)(nil)
)
