package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shopq_merchant_v1_202608/internal/cache"
	"shopq_merchant_v1_202608/internal/repository"
)

// MaintenanceTask 后台维护任务：清理过期审计日志 + 输出缓存统计
type MaintenanceTask struct {
	AuditRepo repository.AuditRepository
	Cache     *cache.TenantCache
	Cron      *cron.Cron

	// 审计日志保留天数，超过即物理删除
	retentionDays int
}

func NewMaintenanceTask(auditRepo repository.AuditRepository, tenantCache *cache.TenantCache) *MaintenanceTask {
	return &MaintenanceTask{
		AuditRepo:     auditRepo,
		Cache:         tenantCache,
		Cron:          cron.New(cron.WithSeconds()), // 支持秒级控制
		retentionDays: 30,
	}
}

// Start 启动定时任务
func (t *MaintenanceTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次维护任务...")
		t.runJob(ctx)
	}()

	// 每天凌晨 4 点清理一次
	_, err := t.Cron.AddFunc("0 0 4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.runJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动维护定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("维护任务已启动 (每天 04:00 执行)")
}

// Stop 停止定时任务
func (t *MaintenanceTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

func (t *MaintenanceTask) runJob(ctx context.Context) {
	start := time.Now()

	if t.AuditRepo != nil {
		cutoff := time.Now().AddDate(0, 0, -t.retentionDays)
		deleted, err := t.AuditRepo.DeleteBefore(ctx, cutoff)
		if err != nil {
			log.Printf("[Task] 清理审计日志失败: %v", err)
		} else if deleted > 0 {
			log.Printf("[Task] 已清理 %d 条过期审计日志 (早于 %s)", deleted, cutoff.Format("2006-01-02"))
		}
	}

	if t.Cache != nil {
		stats := t.Cache.Snapshot()
		log.Printf("[Task] 缓存统计: shops=%d reminders=%d queueTypes=%d", stats.Shops, stats.Reminders, stats.QueueTypes)
	}

	log.Printf("[Task] 维护任务完成，耗时 %v", time.Since(start))
}
