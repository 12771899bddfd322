package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopq_merchant_v1_202608/internal/controller"
	"shopq_merchant_v1_202608/internal/middleware"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/session"

	_ "shopq_merchant_v1_202608/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	Shop      *controller.ShopController
	Reminder  *controller.ReminderController
	Queue     *controller.QueueController
	Dashboard *controller.DashboardController
}

// SetupRouter 注册所有路由
// 公开路由只有登录/登出/找回密码；/merchant 下全部经过会话守卫 + SHOP 角色校验
func SetupRouter(ctl *Controllers, codec *session.Codec, audit middleware.AuditWriter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// 1. Swagger 文档路由
	// 访问 http://localhost:3000/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 公开路由组
	r.POST("/login", middleware.LoginRateLimit(0), ctl.Auth.Login)
	r.GET("/logout", ctl.Auth.Logout)
	r.POST("/forget-password", ctl.Auth.ForgetPassword)
	r.POST("/reset-password", ctl.Auth.ResetPassword)

	// 3. 商户路由组
	merchant := r.Group("/merchant")
	merchant.Use(
		middleware.RequireSession(codec),
		middleware.RequireRole(model.RoleShop),
		middleware.Audit(audit),
	)
	{
		merchant.GET("/dashboard", ctl.Dashboard.Dashboard)

		// shop 店铺管理
		merchant.GET("/shop", ctl.Shop.GetShop)
		merchant.PUT("/shop", ctl.Shop.UpdateShop)
		merchant.PUT("/shop/status", ctl.Shop.ToggleStatus)
		merchant.POST("/shop/avatar", ctl.Shop.UploadAvatar)

		// reminder 提醒
		merchant.GET("/reminders", ctl.Reminder.List)
		merchant.POST("/reminders", ctl.Reminder.Create)
		merchant.PATCH("/reminders/:id/done", ctl.Reminder.MarkDone)

		// queue 排队
		merchant.GET("/queue-types", ctl.Queue.ListTypes)
		merchant.POST("/queue-types", ctl.Queue.CreateType)
		merchant.PATCH("/queue-types/:id", ctl.Queue.UpdateType)
		merchant.DELETE("/queue-types/:id", ctl.Queue.DeleteType)
		merchant.GET("/queue-types/:id/qr", ctl.Queue.QRCode)
		merchant.GET("/queues/:id", ctl.Queue.ListEntries)
		merchant.POST("/queues/:id/next", ctl.Queue.Next)
		merchant.POST("/queues/:id/cancel", ctl.Queue.Cancel)
	}

	return r
}
