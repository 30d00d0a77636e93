package http

import (
	"net/http"
	"strconv"

	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway in front of this service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const identityContextKey = "caller"

// IdentityMiddleware resolves the calling identity from the gateway headers
// and stores it on the request context. Requests without a valid identity are
// rejected with 401 before reaching any handler.
func IdentityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rawID := ctx.Request().Header.Get(HeaderUserID)
		rawRole := ctx.Request().Header.Get(HeaderUserRole)
		if rawID == "" || rawRole == "" {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing identity headers",
			})
		}

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid " + HeaderUserID + " header",
			})
		}

		role, err := kernel.ParseRole(rawRole)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid " + HeaderUserRole + " header",
			})
		}

		caller, err := kernel.NewIdentity(id, role)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid identity",
			})
		}

		ctx.Set(identityContextKey, caller)
		return next(ctx)
	}
}

// callerFrom returns the identity stored by IdentityMiddleware.
func callerFrom(ctx echo.Context) (kernel.Identity, bool) {
	caller, ok := ctx.Get(identityContextKey).(kernel.Identity)
	return caller, ok
}
