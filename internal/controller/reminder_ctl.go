package controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/middleware"
	"shopq_merchant_v1_202608/internal/service"
)

// ReminderController 提醒控制器
type ReminderController struct {
	reminderSvc *service.ReminderService
	shopSvc     *service.ShopService
}

// NewReminderController 创建提醒控制器
func NewReminderController(reminderSvc *service.ReminderService, shopSvc *service.ShopService) *ReminderController {
	return &ReminderController{reminderSvc: reminderSvc, shopSvc: shopSvc}
}

// List 提醒列表（loader）
// @Summary 提醒列表
// @Tags Reminder (提醒)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /merchant/reminders [get]
func (c *ReminderController) List(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	shopID, err := c.shopSvc.ShopIDOf(ctx.Request.Context(), sess)
	if err != nil {
		log.Printf("[Reminder] 无法确定店铺: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"code": http.StatusInternalServerError, "data": []interface{}{}})
		return
	}

	list := c.reminderSvc.FetchReminders(ctx.Request.Context(), sess, shopID)
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": list})
}

// Create 新建提醒
// @Summary 新建提醒
// @Tags Reminder (提醒)
// @Accept x-www-form-urlencoded
// @Produce json
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param due_date formData string false "到期时间"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/reminders [post]
func (c *ReminderController) Create(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	var req dto.CreateReminderReq
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": err.Error()})
		return
	}

	shopID, err := c.shopSvc.ShopIDOf(ctx.Request.Context(), sess)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}
	req.ShopID = int64(shopID)

	if err := c.reminderSvc.CreateReminder(ctx.Request.Context(), sess, req); err != nil {
		log.Printf("[Reminder] 新建提醒失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}

// MarkDone 标记提醒完成
// @Summary 标记提醒完成
// @Tags Reminder (提醒)
// @Produce json
// @Param id path int true "提醒 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/reminders/{id}/done [patch]
func (c *ReminderController) MarkDone(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	reminderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "ID 格式错误"})
		return
	}

	shopID, err := c.shopSvc.ShopIDOf(ctx.Request.Context(), sess)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	if err := c.reminderSvc.MarkDone(ctx.Request.Context(), sess, shopID, reminderID); err != nil {
		log.Printf("[Reminder] 标记完成失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}
