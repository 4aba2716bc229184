package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/service"
)

const (
	actorKey = "actor"
	tokenKey = "token"
)

// JWTAuth validates the bearer token issued by the identity service and
// stashes the caller's identity in the echo context. Tokens carry the user id
// in "sub" (legacy tokens use "id") and the role in "role".
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token claims")
			}

			userID := claimUint(claims, "sub")
			if userID == 0 {
				userID = claimUint(claims, "id")
			}
			if userID == 0 {
				return echo.NewHTTPError(http.StatusForbidden, "token missing user id")
			}

			role, _ := claims["role"].(string)
			c.Set(actorKey, service.Actor{UserID: userID, Role: role})
			c.Set(tokenKey, raw)
			return next(c)
		}
	}
}

// RequireAdmin gates a route to actors with the admin role. Must run after JWTAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !ActorFrom(c).Admin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// ActorFrom returns the authenticated actor, or the zero Actor outside JWTAuth.
func ActorFrom(c echo.Context) service.Actor {
	if a, ok := c.Get(actorKey).(service.Actor); ok {
		return a
	}
	return service.Actor{}
}

// TokenFrom returns the raw bearer token for pass-through calls to collaborators.
func TokenFrom(c echo.Context) string {
	if t, ok := c.Get(tokenKey).(string); ok {
		return t
	}
	return ""
}

func claimUint(claims jwt.MapClaims, key string) uint {
	switch v := claims[key].(type) {
	case float64:
		if v > 0 {
			return uint(v)
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return uint(n)
		}
	}
	return 0
}
