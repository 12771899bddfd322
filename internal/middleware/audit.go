package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/model"
)

// AuditWriter 审计落库的最小接口（由 repository.AuditRepo 实现）
type AuditWriter interface {
	Create(ctx context.Context, entry *model.AuditLog) error
}

// sensitiveFields 不允许进审计快照的表单字段
var sensitiveFields = map[string]bool{
	"password":  true,
	"token":     true,
	"encrypted": true,
}

// Audit 操作审计中间件
// 只记录写操作；writer 为 nil 时整个中间件退化为直通
func Audit(writer AuditWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if writer == nil || c.Request.Method == http.MethodGet {
			return
		}

		entry := &model.AuditLog{
			RequestID: GetRequestID(c),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			Payload:   snapshotForm(c),
		}
		if sess := GetSession(c); sess != nil {
			entry.UserID = int64(sess.UserID)
			entry.Role = sess.Role
		}

		if err := writer.Create(c.Request.Context(), entry); err != nil {
			log.Printf("[Audit] 审计写入失败: %v", err)
		}
	}
}

// snapshotForm 提取表单快照，敏感字段脱敏
func snapshotForm(c *gin.Context) []byte {
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}

	snapshot := make(map[string]string)
	for key, values := range c.Request.PostForm {
		if sensitiveFields[strings.ToLower(key)] {
			snapshot[key] = "***"
			continue
		}
		if len(values) > 0 {
			snapshot[key] = values[0]
		}
	}
	if len(snapshot) == 0 {
		return nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil
	}
	return data
}
