package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"csemotors/internal/model"
)

// TokenExpiry is the duration for which auth tokens are valid.
const TokenExpiry = time.Hour

// Verification failure reasons. The HTTP layer treats them all the same
// (back to the login page) but logging and tests tell them apart.
var (
	// ErrTokenMalformed is returned for tokens that do not parse at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("expired token")
)

// Identity is the trimmed account record embedded in a token. It carries
// no password field, so a hash can never end up inside a token.
type Identity struct {
	AccountID uint       `json:"account_id"`
	FirstName string     `json:"account_firstname"`
	LastName  string     `json:"account_lastname"`
	Email     string     `json:"account_email"`
	Role      model.Role `json:"account_type"`
}

// Claims represents JWT claims.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// JWTService handles auth token generation and validation.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue signs a token carrying the identity, valid for ttl from now.
func (s *JWTService) Issue(identity Identity, ttl time.Duration) (string, error) {
	identity.Role = model.NormalizeRole(identity.Role)
	claims := &Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token string and returns its claims. Expiry is
// checked here against the current clock, not at issuance. Failures map
// onto exactly one of ErrTokenMalformed, ErrTokenSignature, ErrTokenExpired.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenSignature
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	claims.Role = model.NormalizeRole(claims.Role)
	return claims, nil
}
