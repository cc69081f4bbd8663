// Package middleware provides JWT authentication middleware.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/engraving-service/internal/domain/dto"
	"github.com/guttosm/engraving-service/internal/i18n"
)

// AdminClaims are the claims carried by admin tokens issued by the
// merchant back office.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminJWT returns a middleware that validates HMAC-signed admin tokens
// for the configuration endpoints. The token must carry role "admin".
func AdminJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		unauthorized := func(key string) {
			message := i18n.GetTranslator().Translate(key, locale)
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(i18n.ErrKeyInvalidToken)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := parseAdminToken(tokenString, secret)
		if err != nil {
			unauthorized(i18n.ErrKeyInvalidToken)
			return
		}
		if claims.Role != "admin" {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, locale)
			errorResp := dto.NewError(dto.ErrCodeForbidden, message).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusForbidden, errorResp)
			return
		}

		c.Set("admin_subject", claims.Subject)
		c.Next()
	}
}

// parseAdminToken validates the token signature and expiry.
func parseAdminToken(tokenString, secret string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
