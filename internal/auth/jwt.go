package auth

import (
	"context"
	"crypto"
	"errors"
	"time"

	"github.com/giahoa6/crm/internal/identity"
	"github.com/giahoa6/crm/internal/model"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtClaims represents JWT claims, subject is user id
type JwtClaims struct {
	jwt.RegisteredClaims
	Email     string               `json:"email"`
	Role      model.Role           `json:"role"`
	AAL       model.AssuranceLevel `json:"aal"`
	SessionID string               `json:"sid"`
}

// Principal returns caller identity carried by claims
func (c *JwtClaims) Principal() identity.Principal {
	return identity.Principal{
		UserID:    c.Subject,
		SessionID: c.SessionID,
		AAL:       c.AAL,
	}
}

// IsAdmin reports whether token was issued to admin
func (c *JwtClaims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// Jwt represents signed jwt and unix expires at
type Jwt struct {
	Signed    string
	ExpiresAt int64
}

// JwtIssuer issues jwt according to config
type JwtIssuer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	privateKey crypto.PrivateKey
}

// NewJwtIssuer builds JwtIssuer
func NewJwtIssuer(issuer string, method jwt.SigningMethod, ttl time.Duration, key crypto.PrivateKey) *JwtIssuer {
	return &JwtIssuer{
		issuer:     issuer,
		method:     method,
		timeToLive: ttl,
		privateKey: key,
	}
}

// Sign issues new jwt for user within session at given assurance level
func (j *JwtIssuer) Sign(u *model.User, sessionID string, aal model.AssuranceLevel, issuedAt time.Time) (*Jwt, error) {
	expiresAt := issuedAt.Add(j.timeToLive)

	claims := JwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Email:     u.Email,
		Role:      u.Role,
		AAL:       aal,
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(j.method, claims)

	signed, err := token.SignedString(j.privateKey)
	if err != nil {
		return nil, err
	}

	return &Jwt{Signed: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// JwtValidator verifies jwt according to config
type JwtValidator struct {
	method    jwt.SigningMethod
	publicKey crypto.PublicKey
}

// NewJwtValidator builds new JwtValidator
func NewJwtValidator(method jwt.SigningMethod, key crypto.PublicKey) *JwtValidator {
	return &JwtValidator{publicKey: key, method: method}
}

// Verify checks if jwt valid
func (j *JwtValidator) Verify(rawToken string) (*JwtClaims, error) {
	var claims JwtClaims
	if _, err := jwt.ParseWithClaims(rawToken, &claims, j.keyFunc); err != nil {
		return nil, err
	}

	if claims.Subject == "" || claims.SessionID == "" {
		return nil, errors.New("token has no subject or session")
	}
	return &claims, nil
}

func (j *JwtValidator) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != j.method.Alg() {
		return nil, errors.New("failed to verify signing algorithm")
	}
	return j.publicKey, nil
}

type claimsCtxKey struct{}

// WithClaims stores verified claims in context
func WithClaims(ctx context.Context, c *JwtClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, c)
}

// ClaimsFrom extracts claims stored by WithClaims
func ClaimsFrom(ctx context.Context) (*JwtClaims, bool) {
	c, ok := ctx.Value(claimsCtxKey{}).(*JwtClaims)
	return c, ok
}
