// token.go - Issues and verifies the signed bearer tokens callers present

package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-dms-backend/apperr"
	"go-dms-backend/config"
	"go-dms-backend/models"
)

// Revoker stores revoked token ids until the tokens would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Claims is the signed payload of a bearer token.
type Claims struct {
	UserID   uint   `json:"userId"`
	RoleType string `json:"roleType"`
	FullName string `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}

// Gate verifies bearer credentials and turns them into caller identities.
type Gate struct {
	secret  []byte
	ttl     time.Duration
	revoked Revoker // nil disables revocation
	now     func() time.Time
}

// NewGate builds a gate from the signing secret and token TTL in cfg.
// revoked may be nil.
func NewGate(cfg *config.Config, revoked Revoker) *Gate {
	return &Gate{
		secret:  []byte(cfg.JWTSecret),
		ttl:     cfg.TokenTTL,
		revoked: revoked,
		now:     time.Now,
	}
}

// Issue signs a token for user.
func (g *Gate) Issue(user models.User) (string, error) {
	now := g.now()
	claims := Claims{
		UserID:   user.ID,
		RoleType: user.RoleType,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Verify checks signature, algorithm, expiry and revocation of tokenStr.
func (g *Gate) Verify(ctx context.Context, tokenStr string) (models.Identity, error) {
	if tokenStr == "" {
		return models.Identity{}, apperr.Unauthenticated("No token provided.")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, apperr.Unauthenticated("Token has expired.")
		}
		return models.Identity{}, apperr.Unauthenticated("Could not authenticate token.")
	}
	if claims.UserID == 0 || claims.RoleType == "" {
		return models.Identity{}, apperr.Unauthenticated("Could not authenticate token.")
	}

	if g.revoked != nil && claims.ID != "" {
		revoked, err := g.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return models.Identity{}, apperr.Internal(err)
		}
		if revoked {
			return models.Identity{}, apperr.Unauthenticated("Token has been revoked.")
		}
	}

	return models.Identity{
		UserID:    claims.UserID,
		RoleType:  claims.RoleType,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// RequireAdmin fails with Forbidden unless id holds the admin role.
func (g *Gate) RequireAdmin(id models.Identity) error {
	if !id.IsAdmin() {
		return apperr.Forbidden("No authorization.")
	}
	return nil
}

// CanRevoke reports whether logout is supported.
func (g *Gate) CanRevoke() bool { return g.revoked != nil }

// Revoke invalidates the token id was decoded from for the rest of its lifetime.
func (g *Gate) Revoke(ctx context.Context, id models.Identity) error {
	if g.revoked == nil {
		return apperr.Internal(errors.New("token revocation is not configured"))
	}
	ttl := id.ExpiresAt.Sub(g.now())
	if ttl <= 0 || id.TokenID == "" {
		return nil
	}
	if err := g.revoked.Revoke(ctx, id.TokenID, ttl); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
