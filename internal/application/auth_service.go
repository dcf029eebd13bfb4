package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies the two credentials the API accepts: the service
// API key guarding every route, and externally issued identity tokens used
// to resolve the caller for person-scoped reads. Tokens are verified, never
// minted here.
type AuthService struct {
	apiKeyHash  string
	tokenSecret []byte
	tokenIssuer string
	logger      *slog.Logger
}

// NewAuthService wires credential verification. apiKeyHash is an argon2id
// hash produced by HashAPIKey; tokenSecret is the HS256 key material for
// identity tokens, initialised once at startup. tokenIssuer, when
// non-empty, is enforced against the token's iss claim.
func NewAuthService(apiKeyHash string, tokenSecret []byte, tokenIssuer string, logger *slog.Logger) *AuthService {
	return &AuthService{
		apiKeyHash:  apiKeyHash,
		tokenSecret: tokenSecret,
		tokenIssuer: tokenIssuer,
		logger:      defaultLogger(logger),
	}
}

// VerifyAPIKey checks a presented API key. A missing or mismatched key
// yields ErrUnauthorized.
func (s *AuthService) VerifyAPIKey(ctx context.Context, presented string) error {
	if s == nil || s.apiKeyHash == "" {
		return fmt.Errorf("api key verification not configured")
	}
	if strings.TrimSpace(presented) == "" {
		return ErrUnauthorized
	}

	if err := VerifyAPIKey(s.apiKeyHash, presented); err != nil {
		serviceLogger(ctx, s.logger, "auth", "verify_api_key").WarnContext(ctx, "api key rejected", "error_kind", ErrorKind(err))
		return err
	}
	return nil
}

// VerifyIdentityToken validates a signed identity token and returns the
// caller's identity. Only HMAC-signed tokens are accepted; the email claim
// is required.
func (s *AuthService) VerifyIdentityToken(ctx context.Context, tokenString string) (Identity, error) {
	if s == nil || len(s.tokenSecret) == 0 {
		return Identity{}, fmt.Errorf("identity token verification not configured")
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if s.tokenIssuer != "" {
		options = append(options, jwt.WithIssuer(s.tokenIssuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return s.tokenSecret, nil
	}, options...)
	if err != nil {
		serviceLogger(ctx, s.logger, "auth", "verify_identity_token").WarnContext(ctx, "token rejected", "error", err)
		return Identity{}, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return Identity{}, ErrUnauthorized
	}
	role, _ := claims["role"].(string)

	return Identity{
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  role,
	}, nil
}
