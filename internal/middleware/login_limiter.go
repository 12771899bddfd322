package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== LoginLimiter 登录限流器 ====================

// LoginLimiter 登录冷却限流器
// 按「IP + 邮箱」维度限制连续登录尝试，挡住暴力猜密码
type LoginLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLoginLimiter = &LoginLimiter{}

// GetLoginLimiter 获取全局限流器
func GetLoginLimiter() *LoginLimiter {
	return globalLoginLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时顺带更新最后尝试时间
// key: 限流键，如 "login:1.2.3.4:shop@example.com"
// interval: 冷却间隔
func (r *LoginLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除某个键的冷却（登录成功后调用）
func (r *LoginLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== 中间件 ====================

// 连续两次登录尝试之间的最小间隔
const defaultLoginInterval = time.Second

// LoginRateLimit 登录限流中间件
// interval 为 0 时使用默认间隔；超限返回 429 并带 Retry-After 头
func LoginRateLimit(interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = defaultLoginInterval
	}

	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
		key := fmt.Sprintf("login:%s:%s", c.ClientIP(), email)

		result := GetLoginLimiter().Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()+1))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status": http.StatusTooManyRequests,
				"error":  "too many attempts",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
