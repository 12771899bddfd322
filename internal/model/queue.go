package model

import "time"

// 排队单状态常量
const (
	QueueStatusWaiting   = "waiting"
	QueueStatusCompleted = "completed"
	QueueStatusCanceled  = "canceled"
)

// QueueType 队列类型（商户配置的排队通道，如 A 桌 / VIP）
type QueueType struct {
	ID           int64     `json:"id"`
	ShopID       ShopID    `json:"shop_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url,omitempty"`
	QueueCounter int       `json:"queue_counter"`
	IsAvailable  bool      `json:"is_available"`
	Tag          string    `json:"tag"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// QueueEntry 实时排队单（不进缓存，每次都查后端）
type QueueEntry struct {
	ID          int64     `json:"id"`
	QueueTypeID int64     `json:"queue_type_id"`
	Number      string    `json:"queue_number"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QueueStat 单日排队统计（仪表盘折线/柱状图数据源）
type QueueStat struct {
	TotalQueues    int        `json:"total_queues"`
	WaitingCount   int        `json:"waiting_count"`
	CompletedCount int        `json:"completed_count"`
	CanceledCount  int        `json:"canceled_count"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}
