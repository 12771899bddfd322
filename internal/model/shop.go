package model

import "time"

// Shop 店铺档案（后端 /users/:id/shop 返回的数据）
// 每个商户账号对应一家店铺；ImageURL 入缓存前会被归一化为 data URI
type Shop struct {
	ID          ShopID     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	IsVerified  bool       `json:"is_verified"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsOpen      bool       `json:"is_open"`
	Latitude    string     `json:"latitude"`
	Longitude   string     `json:"longitude"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
