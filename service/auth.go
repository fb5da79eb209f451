package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// jwtAuthMiddleware verifies an HMAC-signed bearer JWT with a required
// subject claim, read off the Authorization header.
func jwtAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/healthz" || c.Path() == "/metrics" {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				return c.JSON(http.StatusUnauthorized, httpErrorResp{Error: "missing bearer token"})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, httpErrorResp{Error: "token cannot be parsed"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, httpErrorResp{Error: "malformed claims"})
			}
			subject, _ := claims["subject"].(string)
			if subject == "" {
				return c.JSON(http.StatusUnauthorized, httpErrorResp{Error: "missing subject claim"})
			}

			c.Set("subject", subject)
			return next(c)
		}
	}
}
