package dto

// CreateReminderReq 新建提醒表单
type CreateReminderReq struct {
	ShopID      int64  `form:"shop_id" json:"shop_id"`
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date"`
}
