// internal/middleware/admin.go
package middleware

import (
	"stickyflow-backend/internal/config"
	"stickyflow-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 管理接口的共享口令校验，明文比对
func AdminMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := extractSecret(c)
		if secret == "" {
			utils.Unauthorized(c, "缺少管理口令")
			c.Abort()
			return
		}

		if cfg.Admin.Password == "" || secret != cfg.Admin.Password {
			utils.Unauthorized(c, "管理口令错误")
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractSecret(c *gin.Context) string {
	// 从请求头获取
	if secret := c.GetHeader("X-Admin-Secret"); secret != "" {
		return secret
	}

	// 从查询参数获取（用于 SSE 等不便带头的场景）
	return c.Query("secret")
}
