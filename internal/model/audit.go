package model

import "gorm.io/datatypes"

// AuditLog 商户操作审计日志
// 只记录写操作（POST/PUT/PATCH/DELETE），读操作不落库
type AuditLog struct {
	BaseModel
	RequestID string         `gorm:"size:64;index" json:"request_id"`
	UserID    int64          `gorm:"index" json:"user_id"`
	Role      string         `gorm:"size:20" json:"role"`
	Method    string         `gorm:"size:10" json:"method"`
	Path      string         `gorm:"size:255" json:"path"`
	Status    int            `json:"status"`
	Payload   datatypes.JSON `gorm:"comment:表单快照，敏感字段已脱敏" json:"payload"`
}
