package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the JWT and injects identity claims into context. Requests
// without a valid token are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, jwtSecret)
			if err != nil {
				return err
			}
			setIdentity(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects identity claims when a valid token is present and lets
// the request through anonymously otherwise. Task endpoints use this: guests
// get results, authenticated users additionally get history.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := parseBearer(c, jwtSecret); err == nil {
				setIdentity(c, claims)
			}
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, jwtSecret string) (jwt.MapClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	return claims, nil
}

func setIdentity(c echo.Context, claims jwt.MapClaims) {
	c.Set("username", claims["sub"])
	c.Set("user_id", claims["user_id"])
	c.Set("email", claims["email"])
}
