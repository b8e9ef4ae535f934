package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodjob/globals"
)

var testSecret = []byte("test-signing-key-1234567890123456")

func sign(t *testing.T, secret []byte, claims Claims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return "Bearer " + s
}

func TestValidateJWT(t *testing.T) {
	a := NewAuth(testSecret)

	claims, err := a.ValidateJWT(sign(t, testSecret, Claims{UserID: "u-1", Username: "mark", Type: "facebook"}))
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "facebook", claims.Author().Type)
	assert.Equal(t, "mark", claims.Author().Name)
}

func TestValidateJWT_Rejects(t *testing.T) {
	a := NewAuth(testSecret)
	expired := Claims{UserID: "u-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}

	cases := map[string]string{
		"empty":        "",
		"no bearer":    "Token abc",
		"bad secret":   sign(t, []byte("another-key-0000000000000000000000"), Claims{UserID: "u-1"}),
		"expired":      sign(t, testSecret, expired),
		"missing user": sign(t, testSecret, Claims{Username: "ghost"}),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.ValidateJWT(header)
			assert.Error(t, err)
		})
	}
}

func TestAuthenticateStoresClaims(t *testing.T) {
	a := NewAuth(testSecret)
	var got *Claims
	var userID any
	h := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got, _ = ClaimsFromContext(r.Context())
		userID = r.Context().Value(globals.UserIDKey)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", sign(t, testSecret, Claims{UserID: "u-1", Type: "google", Role: []string{"admin"}}))
	h(httptest.NewRecorder(), req, nil)

	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "u-1", userID)
	assert.True(t, got.HasRole("admin"), "roles travel with the claims")
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	a := NewAuth(testSecret)
	called := false
	h := a.Authenticate(func(http.ResponseWriter, *http.Request, httprouter.Params) { called = true })

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	a := NewAuth(testSecret)
	h := a.Authenticate(RequireRole("admin", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, c := range []struct {
		roles []string
		want  int
	}{
		{[]string{"admin"}, http.StatusNoContent},
		{[]string{"member"}, http.StatusForbidden},
		{nil, http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", sign(t, testSecret, Claims{UserID: "u-1", Role: c.roles}))
		rec := httptest.NewRecorder()
		h(rec, req, nil)
		assert.Equal(t, c.want, rec.Code, "roles %v", c.roles)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "fixed-id", seen)
}

func TestLoggingKeepsStatus(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
