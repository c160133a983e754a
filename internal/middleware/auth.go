package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"lightbnb/internal/auth"
)

const (
	tokenKey  = "token"
	UserIDKey = "uid"
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RequireAuth accepts a bearer token or the session cookie, rejects revoked
// tokens, and stores the caller's user id under UserIDKey.
func RequireAuth(secret string, rc RevocationChecker) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		ContextKey:  tokenKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + auth.CookieName,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil || rc.IsRevoked(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			c.Set(UserIDKey, claims.UserID)
			return next(c)
		})
	}
}

// Claims returns the verified token claims, or nil outside RequireAuth.
func Claims(c echo.Context) *auth.Claims {
	tok, ok := c.Get(tokenKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := tok.Claims.(*auth.Claims)
	return claims
}

func UserID(c echo.Context) (int64, bool) {
	uid, ok := c.Get(UserIDKey).(int64)
	return uid, ok
}
