package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shopq_merchant_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// AuditRepository 审计日志仓储接口
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.AuditLog, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ==================== 仓储实现 ====================

// auditRepo 审计日志仓储实现
type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepository 创建审计日志仓储
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// DeleteBefore 物理删除 cutoff 之前的记录，返回删除行数（保留任务调用）
func (r *auditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.AuditLog{})
	return result.RowsAffected, result.Error
}
