package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context Keys
const (
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// RequestID 请求标识中间件
// 上游带了 X-Request-ID 就沿用，否则生成一个；审计日志用它串联
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID 从 gin context 取请求标识
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
