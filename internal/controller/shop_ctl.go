package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/middleware"
	"shopq_merchant_v1_202608/internal/service"
)

// ShopController 店铺控制器
type ShopController struct {
	shopSvc *service.ShopService
}

// NewShopController 创建店铺控制器
func NewShopController(shopSvc *service.ShopService) *ShopController {
	return &ShopController{shopSvc: shopSvc}
}

// GetShop 店铺档案（loader）
// @Summary 店铺档案
// @Description 返回当前商户的店铺镜像；后端不可达时降级返回旧镜像
// @Tags Shop (店铺管理)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /merchant/shop [get]
func (c *ShopController) GetShop(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	shop, err := c.shopSvc.FetchShop(ctx.Request.Context(), sess)
	if err != nil {
		// 无镜像可降级，返回空数据而非错误页
		log.Printf("[Shop] 店铺数据不可用: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "shop": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "shop": shop})
}

// UpdateShop 更新店铺资料
// @Summary 更新店铺资料
// @Tags Shop (店铺管理)
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string false "店名"
// @Param address formData string false "地址"
// @Param phone formData string false "电话"
// @Param description formData string false "简介"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/shop [put]
func (c *ShopController) UpdateShop(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	var req dto.UpdateShopReq
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": err.Error()})
		return
	}

	shop, err := c.shopSvc.UpdateShop(ctx.Request.Context(), sess, req)
	if err != nil {
		log.Printf("[Shop] 店铺更新失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": shop})
}

// ToggleStatus 切换营业状态
// @Summary 切换营业状态
// @Tags Shop (店铺管理)
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /merchant/shop/status [put]
func (c *ShopController) ToggleStatus(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	shop, err := c.shopSvc.ToggleOpen(ctx.Request.Context(), sess)
	if err != nil {
		log.Printf("[Shop] 营业状态切换失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": http.StatusOK,
		"data": "Shop status changed successfully",
		"shop": shop,
	})
}

// UploadAvatar 上传店铺头像
// @Summary 上传店铺头像
// @Tags Shop (店铺管理)
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "头像图片"
// @Success 200 {object} map[string]interface{}
// @Router /merchant/shop/avatar [post]
func (c *ShopController) UploadAvatar(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": "缺少 image 文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "error": err.Error()})
		return
	}
	defer file.Close()

	if err := c.shopSvc.UploadAvatar(ctx.Request.Context(), sess, fileHeader.Filename, file); err != nil {
		log.Printf("[Shop] 头像上传失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "error": service.MsgGenericError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK})
}
