package middleware

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"goodjob/apperr"
	"goodjob/globals"
	"goodjob/models"
	"goodjob/utils"
)

// JWT claims
type Claims struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Type     string   `json:"type"`
	Email    string   `json:"email,omitempty"`
	Role     []string `json:"role"`
	jwt.RegisteredClaims
}

// Author returns the submitter identity carried by the token.
func (c *Claims) Author() models.Author {
	return models.Author{ID: c.UserID, Name: c.Username, Type: c.Type, Email: c.Email}
}

// HasRole reports whether the token grants role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Role, role)
}

// Auth validates HS256 bearer tokens.
type Auth struct {
	secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{secret: secret}
}

func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := a.ValidateJWT(r.Header.Get("Authorization"))
		if err != nil {
			utils.RespondWithAppError(w, apperr.Unauthorized(err.Error()))
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.UserKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// ValidateJWT parses an "Authorization: Bearer <token>" header value.
func (a *Auth) ValidateJWT(header string) (*Claims, error) {
	if header == "" {
		return nil, fmt.Errorf("missing token")
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil, fmt.Errorf("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user")
	}
	return claims, nil
}

// RequireRole must wrap a handler already behind Authenticate.
func RequireRole(role string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.HasRole(role) {
			utils.RespondWithAppError(w, apperr.Forbidden("insufficient permissions"))
			return
		}
		next(w, r, ps)
	}
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(globals.UserKey).(*Claims)
	return claims, ok && claims != nil
}
