package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "shareit/internal/pkg/jwt"
	"shareit/internal/pkg/response"
)

// SharerUserHeader carries the caller identity when requests arrive through
// the gateway, which has already validated the user.
const SharerUserHeader = "X-Sharer-User-Id"

// Identity resolves the caller into "user_id" in the request context.
// The gateway header wins when present; direct clients may instead send a
// Bearer token issued by the jwt service.
func Identity(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(SharerUserHeader); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+SharerUserHeader+" header")
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing caller identity")
			c.Abort()
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
