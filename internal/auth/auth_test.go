package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cheapHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := NewPasswordHasherWithParams(8*1024, 1, 1).HashPassword(password)
	require.NoError(t, err)
	return hash
}

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	t.Setenv("SBR_TEST_JWT", "0123456789abcdef0123456789abcdef-test")
	return NewAuthService(config.AuthConfig{
		JWTSecretEnv:   "SBR_TEST_JWT",
		AccessTokenTTL: time.Hour,
		Users: []config.UserConfig{
			{Username: "tech", Role: "technician", PasswordHash: cheapHash(t, "s3cret")},
			{Username: "viewer", Role: "operator", PasswordHash: cheapHash(t, "look")},
		},
	}, nil)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithParams(8*1024, 1, 0)
	hash, err := h.HashPassword("correct horse")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$m=8192,t=1,p=1$")

	ok, err := h.VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.VerifyPassword("x", "$bcrypt$whatever")
	assert.Error(t, err)
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestService(t)

	token, expiresAt, err := svc.LoginUser("tech", "s3cret", "127.0.0.1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, perms, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tech", claims.Username)
	assert.Equal(t, []Permission{PermOperator, PermTechnician}, perms)

	_, _, err = svc.LoginUser("tech", "nope", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.LoginUser("ghost", "s3cret", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestLoginLockout(t *testing.T) {
	svc := newTestService(t)
	for i := 0; i < maxFailedAttempts; i++ {
		_, _, err := svc.LoginUser("viewer", "bad", "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, _, err := svc.LoginUser("viewer", "look", "10.0.0.1")
	assert.ErrorContains(t, err, "account locked")
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	other := NewJWTHandler("another-secret-another-secret-1234", time.Hour)
	token, _, err := other.GenerateAccessToken("tech", "admin")
	require.NoError(t, err)

	_, _, err = newTestService(t).ValidateToken(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)

	router := gin.New()
	router.PUT("/write", svc.AuthMiddleware(), RequirePermission(PermTechnician), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("username")})
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/write", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer abc").Code)

	viewer, _, err := svc.LoginUser("viewer", "look", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do("Bearer "+viewer).Code)

	tech, _, err := svc.LoginUser("tech", "s3cret", "")
	require.NoError(t, err)
	rec := do("Bearer " + tech)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"tech"}`, rec.Body.String())
}
