package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, "admin@example.com", RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Sub)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "admin@example.com", RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "admin@example.com", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	return NewService("test-secret", "admin@example.com", hash, time.Hour)
}

func TestServiceLogin(t *testing.T) {
	svc := newTestService(t)

	token, expiresIn, err := svc.Login("admin@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestServiceLoginCaseInsensitiveEmail(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login("ADMIN@Example.COM", "correct-horse")
	assert.NoError(t, err)
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login("someone@else.com", "correct-horse")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPHandlerLogin(t *testing.T) {
	h := NewHTTPHandler(newTestService(t))

	body, _ := json.Marshal(LoginReq{Email: "admin@example.com", Password: "correct-horse"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool      `json:"success"`
		Data    LoginResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
}

func TestHTTPHandlerLoginUnauthorized(t *testing.T) {
	h := NewHTTPHandler(newTestService(t))

	body, _ := json.Marshal(LoginReq{Email: "admin@example.com", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHTTPHandlerLoginBadBody(t *testing.T) {
	h := NewHTTPHandler(newTestService(t))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
