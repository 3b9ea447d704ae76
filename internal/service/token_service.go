package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

// TokenConfig describes how host-issued access tokens are verified.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience []string
	// Leeway tolerates clock skew between this service and the issuer.
	Leeway time.Duration
}

// TokenService validates HS256 access tokens issued by the manufacturing application.
type TokenService struct {
	config TokenConfig
	parser *jwt.Parser
}

// NewTokenService constructs the token validator.
func NewTokenService(cfg TokenConfig) *TokenService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(cfg.Audience[0]))
	}
	return &TokenService{config: cfg, parser: jwt.NewParser(opts...)}
}

// ValidateToken parses and verifies the token string.
func (s *TokenService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := s.parser.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// Sign issues a token with the configured issuer and audience. The host application
// is the usual issuer; this is used for service accounts and tests.
func (s *TokenService) Sign(claims models.JWTClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims.Issuer = s.config.Issuer
	claims.Audience = s.config.Audience
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
