package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/giahoa6/crm/internal/auth"
	"github.com/giahoa6/crm/internal/session"
	"github.com/labstack/echo/v4"
)

// AccessTokenQueryParam carries access token for clients unable to set headers (websocket)
const AccessTokenQueryParam = "access_token"

const gateCtxKey = "session.gate"

// Authorize verifies bearer token and puts its claims into request context
func Authorize(validator *auth.JwtValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := validator.Verify(rawToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithClaims(req.Context(), claims)))
			return next(c)
		}
	}
}

// RequireAdmin rejects callers without admin role, must be chained after Authorize
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := auth.ClaimsFrom(c.Request().Context())
		if !ok {
			return echo.ErrUnauthorized
		}

		if !claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "administrator role is required")
		}
		return next(c)
	}
}

// RequireView lets request through only if session gate of the caller renders one of views.
// Gate is stored in echo context and available through GateFrom.
func RequireView(registry *session.Registry, views ...session.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.ClaimsFrom(c.Request().Context())
			if !ok {
				return echo.ErrUnauthorized
			}

			gate, err := registry.Gate(c.Request().Context(), claims.Principal())
			if err != nil {
				return err
			}

			current := gate.View()
			for _, v := range views {
				if v == current {
					c.Set(gateCtxKey, gate)
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("session is at %s step", current))
		}
	}
}

// GateFrom returns gate stored by RequireView
func GateFrom(c echo.Context) (*session.Gate, bool) {
	g, ok := c.Get(gateCtxKey).(*session.Gate)
	return g, ok
}

func bearerToken(c echo.Context) (string, error) {
	authHdr := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHdr == "" {
		if token := c.QueryParam(AccessTokenQueryParam); token != "" {
			return token, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing Authorization header")
	}

	hdrSplit := strings.Split(authHdr, " ")
	if len(hdrSplit) != 2 || !strings.EqualFold(hdrSplit[0], "Bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header format")
	}
	return hdrSplit[1], nil
}
