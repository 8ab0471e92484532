package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/response"
)

// RequireRole checks that the authenticated user holds one of the given
// roles. RequireAuth must run earlier in the chain.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, roleErrCode(roles))
	}
}

func roleErrCode(roles []model.Role) response.ErrCode {
	if len(roles) != 1 {
		return response.ErrRoleDenied
	}
	switch roles[0] {
	case model.RoleStudent:
		return response.ErrStudentOnly
	case model.RoleCoordinator:
		return response.ErrCoordinatorOnly
	case model.RoleOfficer:
		return response.ErrOfficerOnly
	}
	return response.ErrRoleDenied
}
