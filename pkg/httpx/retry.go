package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy 重试策略
// 作为普通配置值传入，不挂在 transport 中间件上，方便单测替换
type RetryPolicy struct {
	MaxRetries int                                                       // 额外重试次数，不含首次请求
	WaitTime   time.Duration                                             // 首次重试等待，之后每次翻倍（无抖动）
	Retryable  func(method string, resp *resty.Response, err error) bool // 失败分类器
}

// DefaultRetryPolicy 默认策略：最多重试 2 次，500ms 起步翻倍
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		WaitTime:   500 * time.Millisecond,
		Retryable:  DefaultRetryable,
	}
}

// idempotentMethods 幂等方法集合
var idempotentMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
}

// DefaultRetryable 默认失败分类
// 可重试：网络错误、HTTP 500（任何方法）、幂等方法的 5xx
// 其余 4xx 一律不重试
func DefaultRetryable(method string, resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	status := resp.StatusCode()
	if status == http.StatusInternalServerError {
		return true
	}
	if status >= 500 && idempotentMethods[method] {
		return true
	}
	return false
}

// StatusError 非 2xx 响应
// 保留状态码和原始响应体，调用方按需映射（如登录的 401/404 文案）
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error: status %d", e.Status)
}
