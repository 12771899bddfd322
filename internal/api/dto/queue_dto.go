package dto

// QueueTypeReq 新建/编辑队列类型表单
// 新建走多段上传（可带图片），编辑走 JSON
type QueueTypeReq struct {
	ShopID      int64  `form:"shop_id" json:"shop_id"`
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
	IsAvailable bool   `form:"is_available" json:"is_available"`
	Tag         string `form:"tag" json:"tag"`
}
