package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/session"
)

// Context Keys
const (
	ContextKeySession = "session"
)

// RequireSession 会话守卫
// Cookie 缺失/伪造/过期 → 302 /login，后续 handler 不会执行
// 数据层不做跳转，重定向只发生在这一层
func RequireSession(codec *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := codec.FromRequest(c.Request)
		if sess == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// RequireRole 角色守卫，置于 RequireSession 之后
// 角色不符（如 CUSTOMER 访问商户路由）→ 带原因跳回登录页
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || sess.Role != role {
			c.Redirect(http.StatusFound, "/login?error=forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession 从 gin context 取会话，守卫之后必不为 nil
func GetSession(c *gin.Context) *model.Session {
	if v, exists := c.Get(ContextKeySession); exists {
		if sess, ok := v.(*model.Session); ok {
			return sess
		}
	}
	return nil
}
