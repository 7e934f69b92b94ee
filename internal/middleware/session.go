package middleware // reusable HTTP middleware for the identity service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sridip-de/mern-auth/internal/utils"
)

// RequireSession validates the accessToken session cookie and injects
// the token's subject and email claims into the request context.
// The secret must be the access-token signing secret; refresh tokens
// are signed with a different one and will not pass. Handlers behind
// this middleware read the identity via c.Get("user_id") and
// c.Get("email").
func RequireSession(accessSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(utils.AccessCookieName)
			if err != nil || ck.Value == "" {
				return utils.ErrUnauthorized("Not authenticated")
			}

			tok, err := jwt.Parse(ck.Value, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(accessSecret), nil
			})
			if err != nil || !tok.Valid {
				return utils.ErrUnauthorized("Invalid or expired session")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return utils.ErrUnauthorized("Invalid or expired session")
			}

			// JWT numbers decode as float64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return utils.ErrUnauthorized("Invalid or expired session")
			}

			c.Set("user_id", uint64(sub))
			c.Set("email", claims["email"])
			return next(c)
		}
	}
}
