package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopq_merchant_v1_202608/internal/model"
)

// ==================== 测试辅助 ====================

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

func TestAuditRepo_CreateAndList(t *testing.T) {
	repo := NewAuditRepository(setupAuditTestDB(t))
	ctx := context.Background()

	entries := []*model.AuditLog{
		{RequestID: "req-1", UserID: 7, Role: "SHOP", Method: "POST", Path: "/merchant/reminders", Status: 200, Payload: []byte(`{"title":"a"}`)},
		{RequestID: "req-2", UserID: 7, Role: "SHOP", Method: "PUT", Path: "/merchant/shop", Status: 200},
		{RequestID: "req-3", UserID: 8, Role: "SHOP", Method: "DELETE", Path: "/merchant/queue-types/1", Status: 200},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("写入失败: %v", err)
		}
	}

	list, err := repo.ListByUser(ctx, 7, 10)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len = %d, want 2 (只查 user 7)", len(list))
	}

	// limit 生效
	list, err = repo.ListByUser(ctx, 7, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("limit=1 时 len = %d", len(list))
	}
}

func TestAuditRepo_DeleteBefore(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	old := &model.AuditLog{RequestID: "old", UserID: 1, Method: "POST", Path: "/x"}
	recent := &model.AuditLog{RequestID: "recent", UserID: 1, Method: "POST", Path: "/y"}
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if err := repo.Create(ctx, recent); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	// 把第一条改成 40 天前
	cutoffTime := time.Now().AddDate(0, 0, -40)
	db.Model(&model.AuditLog{}).Where("request_id = ?", "old").Update("created_at", cutoffTime)

	deleted, err := repo.DeleteBefore(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("清理失败: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	// 物理删除，连 Unscoped 也查不到
	var count int64
	db.Unscoped().Model(&model.AuditLog{}).Count(&count)
	if count != 1 {
		t.Errorf("剩余 %d 条, want 1", count)
	}
}
