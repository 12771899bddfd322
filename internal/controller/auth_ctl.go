package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/service"
	"shopq_merchant_v1_202608/internal/session"
)

// AuthController 认证控制器
type AuthController struct {
	authSvc *service.AuthService
	codec   *session.Codec
}

// NewAuthController 创建认证控制器
func NewAuthController(authSvc *service.AuthService, codec *session.Codec) *AuthController {
	return &AuthController{authSvc: authSvc, codec: codec}
}

// Login 商户登录
// @Summary 商户登录
// @Description 表单登录，成功后下发会话 Cookie 并跳转仪表盘
// @Tags Auth (认证)
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Success 302 {string} string "跳转 /merchant/dashboard"
// @Failure 400 {object} map[string]interface{} "表单校验失败"
// @Failure 401 {object} map[string]interface{} "邮箱或密码错误"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "", "error": service.MsgGenericError, "status": http.StatusBadRequest})
		return
	}

	if authErr := c.authSvc.ValidateLoginInput(req.Email, req.Password); authErr != nil {
		ctx.JSON(authErr.Status, gin.H{"message": "", "error": authErr.Message, "status": authErr.Status})
		return
	}

	sess, authErr := c.authSvc.Login(ctx.Request.Context(), req.Email, req.Password)
	if authErr != nil {
		ctx.JSON(authErr.Status, gin.H{"message": "", "error": authErr.Message, "status": authErr.Status})
		return
	}

	value, err := c.codec.Encode(sess)
	if err != nil {
		log.Printf("[Auth] 会话编码失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "", "error": service.MsgGenericError, "status": http.StatusInternalServerError})
		return
	}

	c.codec.SetCookie(ctx, value)
	ctx.Redirect(http.StatusFound, "/merchant/dashboard")
}

// Logout 登出
// @Summary 登出
// @Description 吊销后端 Token、清除会话 Cookie 并跳回登录页
// @Tags Auth (认证)
// @Success 302 {string} string "跳转 /login"
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	if sess := c.codec.FromRequest(ctx.Request); sess != nil {
		c.authSvc.Logout(ctx.Request.Context(), sess)
	}

	c.codec.ClearCookie(ctx)
	ctx.Redirect(http.StatusFound, "/login")
}

// ForgetPassword 找回密码
// @Summary 找回密码
// @Tags Auth (认证)
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "邮箱"
// @Success 200 {object} map[string]bool
// @Router /forget-password [post]
func (c *AuthController) ForgetPassword(ctx *gin.Context) {
	var req dto.ForgetPasswordReq
	if err := ctx.ShouldBind(&req); err != nil || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false})
		return
	}

	ok := c.authSvc.ForgetPassword(ctx.Request.Context(), req.Email)
	ctx.JSON(http.StatusOK, gin.H{"ok": ok})
}

// ResetPassword 重置密码
// @Summary 重置密码
// @Tags Auth (认证)
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "邮箱"
// @Param password formData string true "新密码"
// @Param token formData string true "邮件里的重置凭证"
// @Success 200 {object} map[string]bool
// @Router /reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordReq
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false})
		return
	}

	ok := c.authSvc.ResetPassword(ctx.Request.Context(), req)
	ctx.JSON(http.StatusOK, gin.H{"ok": ok})
}
