package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/middleware"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/service"
	"shopq_merchant_v1_202608/pkg/utils"
)

// DashboardController 仪表盘控制器
// 一次 loader 聚合店铺、提醒、队列类型和本周统计
type DashboardController struct {
	shopSvc     *service.ShopService
	reminderSvc *service.ReminderService
	queueSvc    *service.QueueService
}

// NewDashboardController 创建仪表盘控制器
func NewDashboardController(shopSvc *service.ShopService, reminderSvc *service.ReminderService, queueSvc *service.QueueService) *DashboardController {
	return &DashboardController{shopSvc: shopSvc, reminderSvc: reminderSvc, queueSvc: queueSvc}
}

// Dashboard 仪表盘数据（loader）
// @Summary 仪表盘数据
// @Description 聚合店铺镜像、提醒、队列类型与本周排队统计；任一数据源失败都降级为空，不让页面白屏
// @Tags Dashboard (仪表盘)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /merchant/dashboard [get]
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	shop, err := c.shopSvc.FetchShop(ctx.Request.Context(), sess)
	if err != nil {
		log.Printf("[Dashboard] 店铺数据不可用: %v", err)
		ctx.JSON(http.StatusOK, gin.H{
			"shop":        nil,
			"reminders":   []model.Reminder{},
			"queue_types": []model.QueueType{},
			"stats":       []utils.DayStat{},
		})
		return
	}

	reminders := c.reminderSvc.FetchReminders(ctx.Request.Context(), sess, shop.ID)
	queueTypes := c.queueSvc.FetchQueueTypes(ctx.Request.Context(), sess, shop.ID)
	stats := c.queueSvc.WeeklyStats(ctx.Request.Context(), sess, shop.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"shop":        shop,
		"reminders":   reminders,
		"queue_types": queueTypes,
		"stats":       stats,
	})
}
