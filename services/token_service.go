package services

import (
	"fmt"
	"time"

	"store-service/errors"
	"store-service/models"

	"github.com/golang-jwt/jwt/v4"
)

// TokenKind discriminates credential types via the "typ" claim.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// legacyExpiryThreshold separates the two readings of a raw numeric
// expiry: values above it are absolute Unix seconds, values at or
// below it are minute counts.
const legacyExpiryThreshold = 1_000_000_000

// TokenExpiry is an explicit expiry specification: either an absolute
// instant or a duration in minutes.
type TokenExpiry struct {
	absolute bool
	instant  time.Time
	minutes  float64
}

// AbsoluteExpiry expires the token at exactly t.
func AbsoluteExpiry(t time.Time) TokenExpiry {
	return TokenExpiry{absolute: true, instant: t}
}

// RelativeMinutes expires the token m minutes after issuance.
func RelativeMinutes(m float64) TokenExpiry {
	return TokenExpiry{minutes: m}
}

// LegacyExpiry maps a raw number onto TokenExpiry using the historical
// heuristic: spec > 1e9 is an absolute Unix timestamp in seconds,
// anything else is a minute count.
//
// Two hazards, kept for compatibility:
//   - a minute count above ~19 years is misread as a timestamp;
//   - an absolute timestamp already in the past signs a token that is
//     born expired, rather than failing.
func LegacyExpiry(spec float64) TokenExpiry {
	if spec > legacyExpiryThreshold {
		return AbsoluteExpiry(time.Unix(int64(spec), 0))
	}
	return RelativeMinutes(spec)
}

// lifetime converts the expiry into a duration from now. May be zero
// or negative for a past absolute instant.
func (e TokenExpiry) lifetime(now time.Time) time.Duration {
	if e.absolute {
		return e.instant.Sub(now)
	}
	return time.Duration(e.minutes * float64(time.Minute))
}

// TokenService creates and validates JWTs.
type TokenService struct {
	secretKey     []byte
	accessMinutes int
}

// NewTokenService builds a TokenService with the configured signing
// secret and access-token lifetime.
func NewTokenService(secret string, accessMinutes int) *TokenService {
	return &TokenService{
		secretKey:     []byte(secret),
		accessMinutes: accessMinutes,
	}
}

// Issue signs an HS256 token for subjectID with the given kind and
// expiry. Fails with a signing error when the secret is absent.
func (s *TokenService) Issue(subjectID string, expiry TokenExpiry, kind TokenKind) (string, error) {
	if len(s.secretKey) == 0 {
		return "", errors.Signing(fmt.Errorf("signing secret not configured"))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subjectID,
		"typ": string(kind),
		"iat": now.Unix(),
		"exp": now.Add(expiry.lifetime(now)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", errors.Signing(err)
	}
	return signed, nil
}

// GenerateAuthTokens produces the access-token envelope for a user.
// The expiry instant is computed once; the claim and the envelope's
// Expires field both derive from it.
func (s *TokenService) GenerateAuthTokens(user *models.User) (*models.AuthTokens, error) {
	expires := time.Now().Add(time.Duration(s.accessMinutes) * time.Minute)

	token, err := s.Issue(user.ID.String(), AbsoluteExpiry(expires), TokenKindAccess)
	if err != nil {
		return nil, err
	}

	return &models.AuthTokens{
		Access: models.TokenInfo{
			Token:   token,
			Expires: expires,
		},
	}, nil
}

// ValidateToken parses and validates a token string. If expectedKind
// is non-empty, the "typ" claim must match it.
func (s *TokenService) ValidateToken(tokenStr string, expectedKind TokenKind) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if expectedKind != "" {
		if typ, ok := claims["typ"].(string); !ok || typ != string(expectedKind) {
			return nil, fmt.Errorf("invalid token type")
		}
	}
	return claims, nil
}
