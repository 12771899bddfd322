package dto

// LoginReq 登录表单
type LoginReq struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// LoginData 后端 /auth/login 信封里的 data
// Token 是密文，需再调 /auth/decrypt 换明文
type LoginData struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Role  string `json:"role"`
}

// DecryptData 后端 /auth/decrypt 信封里的 data
type DecryptData struct {
	PlainText string `json:"plain_text"`
}

// ForgetPasswordReq 找回密码表单
type ForgetPasswordReq struct {
	Email string `form:"email" json:"email"`
}

// ResetPasswordReq 重置密码表单
type ResetPasswordReq struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Token    string `form:"token" json:"token"`
}
