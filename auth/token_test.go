package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dms-backend/apperr"
	"go-dms-backend/config"
	"go-dms-backend/models"
)

type memRevoker struct {
	ids map[string]time.Duration
	err error
}

func (m *memRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.ids[id] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.ids[id]
	return ok, nil
}

func testGate(r Revoker) *Gate {
	return NewGate(&config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}, r)
}

var jane = models.User{ID: 7, FullName: "Jane Doe", Email: "jane@x.com", RoleType: models.RoleRegular}

func TestIssueAndVerify(t *testing.T) {
	g := testGate(nil)

	token, err := g.Issue(jane)
	require.NoError(t, err)

	id, err := g.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id.UserID)
	assert.Equal(t, models.RoleRegular, id.RoleType)
	assert.NotEmpty(t, id.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestVerifyRejects(t *testing.T) {
	g := testGate(nil)
	good, err := g.Issue(jane)
	require.NoError(t, err)

	other, err := NewGate(&config.Config{JWTSecret: "other", TokenTTL: time.Hour}, nil).Issue(jane)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7, RoleType: "admin"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RoleType:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 7, RoleType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":         "",
		"malformed":       "not-a-jwt",
		"tampered":        good + "x",
		"wrong secret":    other,
		"no expiry":       noExp,
		"no user":         noUser,
		"wrong algorithm": hs512,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := g.Verify(context.Background(), token)
			assert.True(t, apperr.Is(err, apperr.KindUnauthenticated), "got %v", err)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	g := testGate(nil)
	g.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := g.Issue(jane)
	require.NoError(t, err)

	g.now = time.Now
	_, err = g.Verify(context.Background(), token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	assert.Equal(t, "Token has expired.", apperr.Message(err))
}

func TestRequireAdmin(t *testing.T) {
	g := testGate(nil)
	assert.NoError(t, g.RequireAdmin(models.Identity{UserID: 1, RoleType: models.RoleAdmin}))

	err := g.RequireAdmin(models.Identity{UserID: 2, RoleType: models.RoleSuperUser})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRevoke(t *testing.T) {
	r := &memRevoker{ids: map[string]time.Duration{}}
	g := testGate(r)
	require.True(t, g.CanRevoke())

	token, err := g.Issue(jane)
	require.NoError(t, err)
	id, err := g.Verify(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, g.Revoke(context.Background(), id))
	assert.InDelta(t, time.Hour, r.ids[id.TokenID], float64(5*time.Second))

	_, err = g.Verify(context.Background(), token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	assert.Equal(t, "Token has been revoked.", apperr.Message(err))
}

func TestRevokeStoreFailure(t *testing.T) {
	r := &memRevoker{ids: map[string]time.Duration{}}
	g := testGate(r)
	token, err := g.Issue(jane)
	require.NoError(t, err)

	r.err = errors.New("connection refused")
	_, err = g.Verify(context.Background(), token)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}

func TestRevokeWithoutStore(t *testing.T) {
	g := testGate(nil)
	assert.False(t, g.CanRevoke())
	err := g.Revoke(context.Background(), models.Identity{UserID: 1, TokenID: "x", ExpiresAt: time.Now().Add(time.Hour)})
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	tok, ok = BearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer ", "Bearer    ", "Basic abc", "abc.def"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}
