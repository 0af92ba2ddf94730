package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/auth"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// expiredToken signs a token with testSecret that expired an hour ago.
func expiredToken(t *testing.T, adminID uuid.UUID) string {
	t.Helper()
	past := time.Now().Add(-2 * time.Hour)
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID.String(),
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
		AdminID: adminID.String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newTestAuth() authMiddleware {
	return newAuthMiddleware(auth.NewTokenIssuer(testSecret, time.Hour), NewResponder(zerolog.Nop(), false))
}

func TestVerifyBearerMissingToken(t *testing.T) {
	m := newTestAuth()

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer    "} {
		_, err := m.verifyBearer(header)
		require.Error(t, err, header)
		assert.True(t, errs.IsMissingTokenError(err), header)
		assert.True(t, errs.IsUnauthorized(err), header)
		assert.Equal(t, http.StatusUnauthorized, errs.StatusCode(err))
	}
}

func TestVerifyBearerInvalidToken(t *testing.T) {
	m := newTestAuth()

	_, err := m.verifyBearer("Bearer not-a-token")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
	assert.True(t, errs.IsForbidden(err))
	assert.False(t, errs.IsTokenExpiredError(err))
	assert.Equal(t, "Forbidden: Invalid or expired token", err.Error())
}

func TestVerifyBearerExpiredToken(t *testing.T) {
	m := newTestAuth()

	_, err := m.verifyBearer("Bearer " + expiredToken(t, uuid.New()))
	require.Error(t, err)
	assert.True(t, errs.IsTokenExpiredError(err))
	assert.True(t, errs.IsInvalidTokenError(err))
	assert.True(t, errs.IsForbidden(err))
	assert.Equal(t, http.StatusForbidden, errs.StatusCode(err))
	assert.Equal(t, "Forbidden: Invalid or expired token", err.Error())
}

func TestVerifyBearerValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	m := newAuthMiddleware(issuer, NewResponder(zerolog.Nop(), false))
	id := uuid.New()
	token, err := issuer.Issue(id)
	require.NoError(t, err)

	got, err := m.verifyBearer("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestExpiredTokenRejected(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, withToken(httptest.NewRequest(http.MethodGet, "/admins", nil), expiredToken(t, uuid.New())))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden: Invalid or expired token", decode(t, rec).Message)
}
