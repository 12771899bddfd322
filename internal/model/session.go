package model

// 角色常量
const (
	RoleShop     = "SHOP"     // 商户
	RoleCustomer = "CUSTOMER" // 顾客，不允许进入商户端
)

// Session 已解码、可信的会话信息
// 由签名 Cookie 还原而来；Token 是解密后的明文 Bearer Token
type Session struct {
	Token  string `json:"token"`
	UserID UserID `json:"user_id"`
	Role   string `json:"role"`
}

// IsShop 是否为商户角色
func (s *Session) IsShop() bool {
	return s != nil && s.Role == RoleShop
}
