package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shopq_merchant_v1_202608/internal/model"
)

// Cookie 常量
const (
	CookieName   = "auth_shop"
	CookiePath   = "/"
	CookieMaxAge = 24 * 60 * 60 // 24 小时
)

// sessionClaims 会话声明
// Token 是解密后的明文 Bearer Token，签名后客户端不可篡改
type sessionClaims struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec 会话编解码器
// production 控制 Cookie 的 Secure / HttpOnly；本地调试放开 HttpOnly
type Codec struct {
	secret     []byte
	production bool
}

// NewCodec 创建编解码器
func NewCodec(secret []byte, production bool) *Codec {
	return &Codec{secret: secret, production: production}
}

// Encode 把会话编码为签名 Cookie 值
func (c *Codec) Encode(s *model.Session) (string, error) {
	if s == nil {
		return "", errors.New("session is nil")
	}
	now := time.Now()
	claims := &sessionClaims{
		Token:  s.Token,
		UserID: int64(s.UserID),
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(CookieMaxAge * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode 从 Cookie 值还原会话
// 缺失、格式错误、签名不对、过期一律返回 nil，调用方視为未登录；绝不 panic
func (c *Codec) Decode(cookieValue string) *model.Session {
	if cookieValue == "" {
		return nil
	}

	token, err := jwt.ParseWithClaims(cookieValue, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil
	}

	return &model.Session{
		Token:  claims.Token,
		UserID: model.UserID(claims.UserID),
		Role:   claims.Role,
	}
}

// FromRequest 从请求 Cookie 还原会话，未登录返回 nil
func (c *Codec) FromRequest(r *http.Request) *model.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	return c.Decode(cookie.Value)
}

// SetCookie 下发会话 Cookie
func (c *Codec) SetCookie(ctx *gin.Context, value string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	// 生产环境强制 Secure + HttpOnly，开发环境放开 HttpOnly 便于本地调试
	ctx.SetCookie(CookieName, value, CookieMaxAge, CookiePath, "", c.production, c.production)
}

// ClearCookie 清除会话 Cookie（登出）
func (c *Codec) ClearCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(CookieName, "", -1, CookiePath, "", c.production, c.production)
}
