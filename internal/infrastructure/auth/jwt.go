package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

// Claims carries the participant handle next to the registered claims.
// Tokens without a username fall back to the subject.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 participant tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	issuer string
	logger *logging.Logger
	now    func() time.Time
}

func NewVerifier(secret, issuer string, logger *logging.Logger) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		logger: logger,
		now:    time.Now,
	}, nil
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (participant.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return participant.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		v.logger.DebugContext(ctx, "reject participant token", "error", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return participant.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		}
		return participant.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}
	if !parsed.Valid {
		return participant.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	handle := strings.TrimSpace(claims.Username)
	if handle == "" {
		handle = strings.TrimSpace(claims.Subject)
	}
	if handle == "" {
		return participant.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return participant.Principal{
		Subject: claims.Subject,
		Handle:  handle,
	}, nil
}

// Issue signs a token for handle. Operators hand these out so a participant
// cannot submit under someone else's handle.
func (v *Verifier) Issue(handle string, ttl time.Duration) (string, error) {
	handle, err := participant.NormalizeHandle(handle)
	if err != nil {
		return "", err
	}

	now := v.now()
	claims := Claims{
		Username: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  participant.HandleKey(handle),
			Issuer:   v.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign participant token: %w", err)
	}
	return signed, nil
}
