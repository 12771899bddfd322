package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopq_merchant_v1_202608/internal/cache"
	"shopq_merchant_v1_202608/internal/config"
	"shopq_merchant_v1_202608/internal/controller"
	"shopq_merchant_v1_202608/internal/middleware"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/repository"
	"shopq_merchant_v1_202608/internal/router"
	"shopq_merchant_v1_202608/internal/service"
	"shopq_merchant_v1_202608/internal/session"
	"shopq_merchant_v1_202608/internal/task"
	"shopq_merchant_v1_202608/pkg/database"
	"shopq_merchant_v1_202608/pkg/httpx"
)

// @title 商户排队后台 BFF
// @version 1.0
// @description 面向商户端的会话与数据同步服务
// @BasePath /
func main() {
	// 1. 读取配置
	cfg := config.Load()

	// 2. 初始化审计库（可选）
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, deps.Codec, deps.AuditWriter)

	// 6. 启动服务
	startServer(r, cfg.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Codec       *session.Codec
	Cache       *cache.TenantCache
	AuditRepo   repository.AuditRepository
	AuditWriter middleware.AuditWriter
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Shop     *service.ShopService
	Reminder *service.ReminderService
	Queue    *service.QueueService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化审计库
// DATABASE_URL 为空时跳过，审计中间件会自动降级为直通
func initDatabase(cfg *config.Config) *gorm.DB {
	if cfg.AuditDSN == "" {
		log.Println("[Main] 未配置 DATABASE_URL，审计落库已关闭")
		return nil
	}

	db, err := database.InitDB(cfg.AuditDSN, &model.AuditLog{})
	if err != nil {
		log.Fatalf("审计库初始化失败: %v", err)
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- 基础设施 --------
	codec := session.NewCodec(cfg.CookieSecret(), cfg.IsProduction())
	tenantCache := cache.New(nil)
	clients := httpx.NewFactory(cfg.BackendURL, cfg.ContentType, httpx.DefaultRetryPolicy())

	var auditRepo repository.AuditRepository
	var auditWriter middleware.AuditWriter
	if db != nil {
		auditRepo = repository.NewAuditRepository(db)
		auditWriter = auditRepo
	}

	// -------- Service 层 --------
	services := &Services{
		Auth:     service.NewAuthService(clients),
		Shop:     service.NewShopService(clients, tenantCache),
		Reminder: service.NewReminderService(clients, tenantCache),
		Queue:    service.NewQueueService(clients, tenantCache),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:      controller.NewAuthController(services.Auth, codec),
		Shop:      controller.NewShopController(services.Shop),
		Reminder:  controller.NewReminderController(services.Reminder, services.Shop),
		Queue:     controller.NewQueueController(services.Queue, services.Shop),
		Dashboard: controller.NewDashboardController(services.Shop, services.Reminder, services.Queue),
	}

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		Codec:       codec,
		Cache:       tenantCache,
		AuditRepo:   auditRepo,
		AuditWriter: auditWriter,
		Services:    services,
		Controllers: controllers,
	}
}

// initTasks 启动定时任务
func initTasks(deps *Dependencies) {
	maintenance := task.NewMaintenanceTask(deps.AuditRepo, deps.Cache)
	maintenance.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
