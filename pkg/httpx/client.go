package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"shopq_merchant_v1_202608/internal/model"
)

// 缺省请求超时：每次尝试各自计时，不与重试共享一个总 deadline
const defaultTimeout = 10 * time.Second

// Options 单次构建客户端的选项
type Options struct {
	WithoutToken bool   // 不注入 Authorization 头（登录、找回密码等公开接口）
	CustomToken  string // 覆盖会话中的 Token
	Raw          bool   // 跳过 {data: ...} 信封解包
	IsFormData   bool   // 表单/多段上传，由 resty 自行设置 Content-Type
}

// File 多段上传的文件项
type File struct {
	Field  string
	Name   string
	Reader io.Reader
}

// Factory 按会话构建后端 API 客户端
// 它是全系统统一的对后端网络请求入口
type Factory struct {
	baseURL     string
	contentType string
	timeout     time.Duration
	policy      RetryPolicy
}

// NewFactory 创建客户端工厂
// contentType 为空时使用 application/json
func NewFactory(baseURL, contentType string, policy RetryPolicy) *Factory {
	if contentType == "" {
		contentType = "application/json"
	}
	return &Factory{
		baseURL:     baseURL,
		contentType: contentType,
		timeout:     defaultTimeout,
		policy:      policy,
	}
}

// Build 为本次请求构建客户端
// 除非 WithoutToken，总是注入 Bearer Token（优先 CustomToken）
func (f *Factory) Build(session *model.Session, opts Options) *Client {
	rc := resty.New().
		SetBaseURL(f.baseURL).
		SetTimeout(f.timeout).
		SetHeader("X-Content-Type-Options", "nosniff")

	if !opts.IsFormData {
		rc.SetHeader("Content-Type", f.contentType)
	}

	if !opts.WithoutToken {
		token := opts.CustomToken
		if token == "" && session != nil {
			token = session.Token
		}
		if token != "" {
			rc.SetAuthToken(token)
		}
	}

	return &Client{rc: rc, policy: f.policy, raw: opts.Raw}
}

// Client 单次请求范围的后端客户端
type Client struct {
	rc     *resty.Client
	policy RetryPolicy
	raw    bool
}

// Get 发起 GET 请求
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodGet, path, func(r *resty.Request) {
		if query != nil {
			r.SetQueryParamsFromValues(query)
		}
	})
}

// Post 发起 JSON POST 请求
func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodPost, path, func(r *resty.Request) {
		if body != nil {
			r.SetBody(body)
		}
	})
}

// PostForm 发起 x-www-form-urlencoded POST 请求
func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodPost, path, func(r *resty.Request) {
		r.SetFormData(fields)
	})
}

// PostMultipart 发起多段上传 POST 请求（头像、队列图片）
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files ...File) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodPost, path, func(r *resty.Request) {
		if fields != nil {
			r.SetMultipartFormData(fields)
		}
		for _, f := range files {
			r.SetMultipartField(f.Field, f.Name, "application/octet-stream", f.Reader)
		}
	})
}

// Put 发起 JSON PUT 请求
func (c *Client) Put(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodPut, path, func(r *resty.Request) {
		if body != nil {
			r.SetBody(body)
		}
	})
}

// Patch 发起 JSON PATCH 请求
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodPatch, path, func(r *resty.Request) {
		if body != nil {
			r.SetBody(body)
		}
	})
}

// Delete 发起 DELETE 请求
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, resty.MethodDelete, path, nil)
}

// do 发送请求（显式重试循环，策略见 RetryPolicy）
// 每次尝试独立超时；重试间隔从 WaitTime 开始逐次翻倍
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request)) (json.RawMessage, error) {
	var lastErr error
	wait := c.policy.WaitTime

	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}

		req := c.rc.R().SetContext(ctx)
		if build != nil {
			build(req)
		}

		resp, err := req.Execute(method, path)
		if err == nil && resp.IsSuccess() {
			return c.unwrap(resp.Body()), nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = &StatusError{Status: resp.StatusCode(), Body: resp.Body()}
		}

		if !c.policy.Retryable(method, resp, err) {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

// unwrap 信封解包：有 data 字段取 data，否则原样返回
func (c *Client) unwrap(body []byte) json.RawMessage {
	if c.raw {
		return body
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return body
}

// StatusOf 从错误里取 HTTP 状态码，非状态错误返回 0
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// BodyOf 从错误里取原始响应体
func BodyOf(err error) []byte {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body
	}
	return nil
}
