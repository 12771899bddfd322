package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/pkg/httpx"
)

// 登录提示文案（面向泰语商户，与后端约定保持一致）
const (
	MsgEmailRequired    = "กรุณากรอกอีเมล"                      // 请输入邮箱
	MsgPasswordRequired = "กรุณากรอกรหัสผ่าน"                   // 请输入密码
	MsgAccountNotFound  = "ไม่พบข้อมูลหรือยังไม่ได้ยืนยันอีเมล" // 账号不存在或邮箱未验证
	MsgWrongCredentials = "อีเมลหรือรหัสผ่านไม่ถูกต้อง"         // 邮箱或密码错误
	MsgForbidden        = "คุณไม่มีสิทธิ์เข้าใช้งาน"            // 无权访问商户端
	MsgGenericError     = "เกิดข้อผิดพลาด"                      // 通用错误
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthError 登录链路的业务错误
// 以返回值形式传递，路由层决定展示还是跳转，service 层不做重定向
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// AuthService 认证服务
type AuthService struct {
	clients *httpx.Factory
}

// NewAuthService 工厂方法
func NewAuthService(clients *httpx.Factory) *AuthService {
	return &AuthService{clients: clients}
}

// ValidateLoginInput 登录表单本地校验
func (s *AuthService) ValidateLoginInput(email, password string) *AuthError {
	if !emailPattern.MatchString(email) {
		return &AuthError{Status: http.StatusBadRequest, Message: MsgEmailRequired}
	}
	if password == "" {
		return &AuthError{Status: http.StatusBadRequest, Message: MsgPasswordRequired}
	}
	return nil
}

// Login 两步登录
// 1. /auth/login 换回密文 token + 用户信息
// 2. /auth/decrypt 把密文解成明文 Bearer Token（必经步骤，不可省）
// 全部成功才返回会话；角色不是 SHOP 直接拒绝，不发 Cookie
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, *AuthError) {
	client := s.clients.Build(nil, httpx.Options{WithoutToken: true, IsFormData: true})

	data, err := client.PostForm(ctx, "/auth/login", map[string]string{
		"email":    strings.ToLower(email),
		"password": password,
	})
	if err != nil {
		switch httpx.StatusOf(err) {
		case http.StatusNotFound:
			return nil, &AuthError{Status: http.StatusNotFound, Message: MsgAccountNotFound}
		case http.StatusUnauthorized:
			return nil, &AuthError{Status: http.StatusUnauthorized, Message: MsgWrongCredentials}
		default:
			log.Printf("[Auth] 登录请求失败: %v", err)
			return nil, &AuthError{Status: http.StatusInternalServerError, Message: MsgGenericError}
		}
	}

	var login dto.LoginData
	if err := json.Unmarshal(data, &login); err != nil {
		log.Printf("[Auth] 登录响应解析失败: %v", err)
		return nil, &AuthError{Status: http.StatusInternalServerError, Message: MsgGenericError}
	}

	if login.Role != model.RoleShop {
		return nil, &AuthError{Status: http.StatusForbidden, Message: MsgForbidden}
	}

	plain, authErr := s.decryptToken(ctx, login.Token)
	if authErr != nil {
		return nil, authErr
	}

	return &model.Session{
		Token:  plain,
		UserID: model.UserID(login.ID),
		Role:   login.Role,
	}, nil
}

// decryptToken 密文换明文
// 解密失败（后端 5xx 等）只给通用文案，登录中止、不发 Cookie
func (s *AuthService) decryptToken(ctx context.Context, encrypted string) (string, *AuthError) {
	client := s.clients.Build(nil, httpx.Options{WithoutToken: true, IsFormData: true})

	data, err := client.PostForm(ctx, "/auth/decrypt", map[string]string{"encrypted": encrypted})
	if err != nil {
		log.Printf("[Auth] Token 解密失败: %v", err)
		return "", &AuthError{Status: http.StatusInternalServerError, Message: MsgGenericError}
	}

	var decrypted dto.DecryptData
	if err := json.Unmarshal(data, &decrypted); err != nil || decrypted.PlainText == "" {
		log.Printf("[Auth] Token 解密响应异常: %v", err)
		return "", &AuthError{Status: http.StatusInternalServerError, Message: MsgGenericError}
	}

	return decrypted.PlainText, nil
}

// Logout 通知后端吊销 Token
// 吊销失败只记日志，不阻断登出（Cookie 总是要清）
func (s *AuthService) Logout(ctx context.Context, sess *model.Session) {
	client := s.clients.Build(sess, httpx.Options{})
	if _, err := client.Post(ctx, "/auth/logout", nil); err != nil {
		log.Printf("[Auth] Token 吊销失败: %v", err)
	}
}

// ForgetPassword 发送找回密码邮件（公开接口，不带 Token）
func (s *AuthService) ForgetPassword(ctx context.Context, email string) bool {
	client := s.clients.Build(nil, httpx.Options{WithoutToken: true})
	if _, err := client.Post(ctx, "/auth/forget-password", map[string]string{"email": email}); err != nil {
		log.Printf("[Auth] 找回密码请求失败: %v", err)
		return false
	}
	return true
}

// ResetPassword 凭邮件里的 token 重置密码（公开接口，不带 Token）
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordReq) bool {
	client := s.clients.Build(nil, httpx.Options{WithoutToken: true})
	body := map[string]string{"email": req.Email, "password": req.Password, "token": req.Token}
	if _, err := client.Post(ctx, "/auth/reset-password", body); err != nil {
		log.Printf("[Auth] 重置密码请求失败: %v", err)
		return false
	}
	return true
}
