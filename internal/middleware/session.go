package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/session"
)

// TouchSession validates the server-side session for the authenticated
// user and rearms its idle deadline to the full window. Every request
// passing through counts as activity.
//
// A session that outlived its idle deadline is reported as expired on
// this request only; the next request sees no session at all. A JTI
// mismatch means a newer login replaced this one.
func TouchSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		err := authService.TouchSession(c.Request.Context(), claims)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, session.ErrExpired):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionExpired)
		case errors.Is(err, session.ErrReplaced):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
		case errors.Is(err, session.ErrNoSession):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNoSession)
		default:
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
		}
	}
}
