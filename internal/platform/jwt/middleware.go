package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"prep_tracker/internal/api"
)

// Context keys set by AuthRequired.
const (
	ContextUserID      = "userID"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// RevocationChecker reports whether a token id has been revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only. revoked may be nil.
func AuthRequired(secret string, revoked RevocationChecker) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgMissingBearer})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		var claims Claims
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidToken})
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 0)
		if err != nil || userID == 0 || claims.ID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidToken})
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				slog.Error("revocation lookup failed", "error", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: api.MsgServiceFailure})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidToken})
				return
			}
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
		c.Next()
	}
}

// UserID returns the authenticated user id.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// Token returns the id and expiry of the token that authenticated the request.
func Token(c *gin.Context) (string, time.Time, bool) {
	id := c.GetString(ContextTokenID)
	exp := c.GetTime(ContextTokenExpiry)
	return id, exp, id != ""
}
