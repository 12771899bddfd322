package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/middleware"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/service"
	"shopq_merchant_v1_202608/pkg/httpx"
	"shopq_merchant_v1_202608/pkg/utils"
)

// QueueController 队列控制器
type QueueController struct {
	queueSvc *service.QueueService
	shopSvc  *service.ShopService
}

// NewQueueController 创建队列控制器
func NewQueueController(queueSvc *service.QueueService, shopSvc *service.ShopService) *QueueController {
	return &QueueController{queueSvc: queueSvc, shopSvc: shopSvc}
}

// ListTypes 队列类型列表（loader）
// @Summary 队列类型列表
// @Tags Queue (排队)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queue-types [get]
func (c *QueueController) ListTypes(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	shopID, err := c.shopSvc.ShopIDOf(ctx.Request.Context(), sess)
	if err != nil {
		log.Printf("[Queue] 无法确定店铺: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"code": http.StatusInternalServerError, "data": []interface{}{}})
		return
	}

	list := c.queueSvc.FetchQueueTypes(ctx.Request.Context(), sess, shopID)
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": list})
}

// CreateType 新建队列类型
// @Summary 新建队列类型
// @Tags Queue (排队)
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "名称"
// @Param description formData string false "描述"
// @Param is_available formData bool false "是否开放"
// @Param tag formData string false "标签"
// @Param image formData file false "展示图"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queue-types [post]
func (c *QueueController) CreateType(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	var req dto.QueueTypeReq
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

	var image *httpx.File
	if fileHeader, err := ctx.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err == nil {
			defer file.Close()
			image = &httpx.File{Field: "image", Name: fileHeader.Filename, Reader: file}
		}
	}

	if err := c.queueSvc.CreateQueueType(ctx.Request.Context(), sess, req, image); err != nil {
		log.Printf("[Queue] 新建队列类型失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}

// UpdateType 编辑队列类型
// @Summary 编辑队列类型
// @Tags Queue (排队)
// @Accept json
// @Produce json
// @Param id path int true "队列类型 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queue-types/{id} [patch]
func (c *QueueController) UpdateType(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	queueTypeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "ID 格式错误"})
		return
	}

	var req dto.QueueTypeReq
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": err.Error()})
		return
	}

	shopID, err := c.shopSvc.ShopIDOf(ctx.Request.Context(), sess)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	if err := c.queueSvc.UpdateQueueType(ctx.Request.Context(), sess, shopID, queueTypeID, req); err != nil {
		log.Printf("[Queue] 编辑队列类型失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}

// DeleteType 删除队列类型
// @Summary 删除队列类型
// @Tags Queue (排队)
// @Produce json
// @Param id path int true "队列类型 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queue-types/{id} [delete]
func (c *QueueController) DeleteType(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	queueTypeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "ID 格式错误"})
		return
	}

	shopID, err := c.shopSvc.ShopIDOf(ctx.Request.Context(), sess)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	if err := c.queueSvc.DeleteQueueType(ctx.Request.Context(), sess, shopID, queueTypeID); err != nil {
		log.Printf("[Queue] 删除队列类型失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}

// ListEntries 实时排队单（不缓存）
// @Summary 实时排队单
// @Tags Queue (排队)
// @Produce json
// @Param id path int true "队列类型 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queues/{id} [get]
func (c *QueueController) ListEntries(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	queueTypeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "ID 格式错误"})
		return
	}

	entries, err := c.queueSvc.FetchQueueEntries(ctx.Request.Context(), sess, queueTypeID)
	if err != nil {
		log.Printf("[Queue] 拉取排队单失败: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"code": http.StatusInternalServerError, "data": []interface{}{}})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": entries})
}

// Next 叫号
// @Summary 叫号
// @Tags Queue (排队)
// @Produce json
// @Param id path int true "队列类型 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queues/{id}/next [post]
func (c *QueueController) Next(ctx *gin.Context) {
	c.queueAction(ctx, c.queueSvc.NextQueue)
}

// Cancel 取消当前排队单
// @Summary 取消当前排队单
// @Tags Queue (排队)
// @Produce json
// @Param id path int true "队列类型 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queues/{id}/cancel [post]
func (c *QueueController) Cancel(ctx *gin.Context) {
	c.queueAction(ctx, c.queueSvc.CancelQueue)
}

// QRCode 队列入口二维码
// @Summary 队列入口二维码
// @Description 生成顾客取号页的二维码 data URI
// @Tags Queue (排队)
// @Produce json
// @Param id path int true "队列类型 ID"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/queue-types/{id}/qr [get]
func (c *QueueController) QRCode(ctx *gin.Context) {
	queueTypeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "ID 格式错误"})
		return
	}

	content := fmt.Sprintf("https://%s/queue/%d", ctx.Request.Host, queueTypeID)
	qr, err := utils.GenerateQRCode(content)
	if err != nil {
		log.Printf("[Queue] 二维码生成失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": qr, "content": content})
}

// queueAction next / cancel 的公共骨架
func (c *QueueController) queueAction(ctx *gin.Context, action func(context.Context, *model.Session, int64) error) {
	sess := middleware.GetSession(ctx)

	queueTypeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "ID 格式错误"})
		return
	}

	if err := action(ctx.Request.Context(), sess, queueTypeID); err != nil {
		log.Printf("[Queue] 排队操作失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}
