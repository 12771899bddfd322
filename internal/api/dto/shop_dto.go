package dto

// UpdateShopReq 店铺资料更新表单
type UpdateShopReq struct {
	Name        string `form:"name" json:"name"`
	Address     string `form:"address" json:"address"`
	Phone       string `form:"phone" json:"phone"`
	Description string `form:"description" json:"description"`
}
