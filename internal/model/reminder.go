package model

import "time"

// Reminder 状态常量
const (
	ReminderStatusPending = "PENDING" // 待办
	ReminderStatusDone    = "DONE"    // 已完成
)

// Reminder 店铺待办提醒
type Reminder struct {
	ID          int64     `json:"id"`
	ShopID      ShopID    `json:"shop_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
