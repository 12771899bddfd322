package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/cache"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/pkg/httpx"
)

// ReminderService 店铺待办提醒服务
// 所有写操作完成后必须刷新镜像（含标记完成），避免静默过期
type ReminderService struct {
	clients *httpx.Factory
	cache   *cache.TenantCache
}

// NewReminderService 工厂方法
func NewReminderService(clients *httpx.Factory, tenantCache *cache.TenantCache) *ReminderService {
	return &ReminderService{clients: clients, cache: tenantCache}
}

// FetchReminders 拉取提醒列表并刷新镜像（loader 路径）
// 失败降级返回旧镜像（可能为空列表），页面不白屏
func (s *ReminderService) FetchReminders(ctx context.Context, sess *model.Session, shopID model.ShopID) []model.Reminder {
	if err := s.refresh(ctx, sess, shopID); err != nil {
		log.Printf("[Reminder] 拉取提醒失败，降级使用缓存: %v", err)
	}
	return s.cache.GetReminders(shopID)
}

// refresh 回源拉取，成功后整体覆盖镜像
func (s *ReminderService) refresh(ctx context.Context, sess *model.Session, shopID model.ShopID) error {
	client := s.clients.Build(sess, httpx.Options{})

	data, err := client.Get(ctx, fmt.Sprintf("/shops/reminders/%d", shopID), nil)
	if err != nil {
		return err
	}

	var list []model.Reminder
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("提醒数据格式异常: %v", err)
	}

	s.cache.SetReminders(shopID, list)
	return nil
}

// CreateReminder 新建提醒，成功后回源刷新
// 回源失败时退而求其次：把创建响应追加进本地镜像
func (s *ReminderService) CreateReminder(ctx context.Context, sess *model.Session, req dto.CreateReminderReq) error {
	client := s.clients.Build(sess, httpx.Options{})

	data, err := client.Post(ctx, "/shops/reminders", req)
	if err != nil {
		return err
	}

	if err := s.refresh(ctx, sess, model.ShopID(req.ShopID)); err != nil {
		log.Printf("[Reminder] 新建后刷新失败，本地追加: %v", err)
		var created model.Reminder
		if jsonErr := json.Unmarshal(data, &created); jsonErr == nil && created.ID != 0 {
			s.cache.AppendReminder(model.ShopID(req.ShopID), created)
		}
	}
	return nil
}

// MarkDone 标记提醒完成，成功后必须回源刷新
// （镜像若不更新，已完成的提醒会一直假装没完成）
func (s *ReminderService) MarkDone(ctx context.Context, sess *model.Session, shopID model.ShopID, reminderID int64) error {
	client := s.clients.Build(sess, httpx.Options{})

	if _, err := client.Patch(ctx, fmt.Sprintf("/shops/reminders/%d", reminderID), nil); err != nil {
		return err
	}

	if err := s.refresh(ctx, sess, shopID); err != nil {
		log.Printf("[Reminder] 标记完成后刷新失败: %v", err)
	}
	return nil
}
