package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/cache"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/pkg/httpx"
	"shopq_merchant_v1_202608/pkg/utils"
)

// QueueService 队列类型与实时排队服务
// 队列类型进缓存；实时排队单每次都查后端，不缓存
type QueueService struct {
	clients *httpx.Factory
	cache   *cache.TenantCache
}

// NewQueueService 工厂方法
func NewQueueService(clients *httpx.Factory, tenantCache *cache.TenantCache) *QueueService {
	return &QueueService{clients: clients, cache: tenantCache}
}

// ==================== 队列类型 ====================

// FetchQueueTypes 拉取队列类型并刷新镜像（loader 路径）
// 失败降级返回旧镜像
func (s *QueueService) FetchQueueTypes(ctx context.Context, sess *model.Session, shopID model.ShopID) []model.QueueType {
	if err := s.refresh(ctx, sess, shopID); err != nil {
		log.Printf("[Queue] 拉取队列类型失败，降级使用缓存: %v", err)
	}
	return s.cache.GetQueueTypes(shopID)
}

// refresh 回源拉取，成功后整体覆盖镜像（逐条归一化图片）
func (s *QueueService) refresh(ctx context.Context, sess *model.Session, shopID model.ShopID) error {
	client := s.clients.Build(sess, httpx.Options{})

	query := url.Values{"shop_id": []string{shopID.String()}}
	data, err := client.Get(ctx, "/queues", query)
	if err != nil {
		return err
	}

	var list []model.QueueType
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("队列类型数据格式异常: %v", err)
	}

	s.cache.SetQueueTypes(shopID, list)
	return nil
}

// CreateQueueType 新建队列类型（多段上传，可带图片），成功后回源刷新
// 回源失败时把创建响应本地 upsert，保证页面立刻能看到新队列
func (s *QueueService) CreateQueueType(ctx context.Context, sess *model.Session, req dto.QueueTypeReq, image *httpx.File) error {
	client := s.clients.Build(sess, httpx.Options{IsFormData: true})

	fields := map[string]string{
		"shop_id":      strconv.FormatInt(req.ShopID, 10),
		"name":         req.Name,
		"description":  req.Description,
		"is_available": strconv.FormatBool(req.IsAvailable),
		"tag":          req.Tag,
	}
	var files []httpx.File
	if image != nil {
		files = append(files, *image)
	}

	data, err := client.PostMultipart(ctx, "/queues", fields, files...)
	if err != nil {
		return err
	}

	s.refreshOrUpsert(ctx, sess, model.ShopID(req.ShopID), data)
	return nil
}

// UpdateQueueType 编辑队列类型，成功后回源刷新
func (s *QueueService) UpdateQueueType(ctx context.Context, sess *model.Session, shopID model.ShopID, queueTypeID int64, req dto.QueueTypeReq) error {
	client := s.clients.Build(sess, httpx.Options{})

	data, err := client.Patch(ctx, fmt.Sprintf("/queues/%d", queueTypeID), req)
	if err != nil {
		return err
	}

	s.refreshOrUpsert(ctx, sess, shopID, data)
	return nil
}

// DeleteQueueType 删除队列类型，成功后回源刷新
// 回源失败时本地按 id 过滤，删除操作幂等
func (s *QueueService) DeleteQueueType(ctx context.Context, sess *model.Session, shopID model.ShopID, queueTypeID int64) error {
	client := s.clients.Build(sess, httpx.Options{})

	if _, err := client.Delete(ctx, fmt.Sprintf("/queues/%d", queueTypeID)); err != nil {
		return err
	}

	if err := s.refresh(ctx, sess, shopID); err != nil {
		log.Printf("[Queue] 删除后刷新失败，本地过滤: %v", err)
		s.cache.RemoveQueueType(shopID, queueTypeID)
	}
	return nil
}

// refreshOrUpsert 优先回源；回源失败则把后端响应本地 upsert
func (s *QueueService) refreshOrUpsert(ctx context.Context, sess *model.Session, shopID model.ShopID, data json.RawMessage) {
	if err := s.refresh(ctx, sess, shopID); err == nil {
		return
	} else {
		log.Printf("[Queue] 变更后刷新失败，本地合并: %v", err)
	}

	var qt model.QueueType
	if err := json.Unmarshal(data, &qt); err == nil && qt.ID != 0 {
		s.cache.UpsertQueueType(shopID, qt)
	}
}

// ==================== 实时排队 ====================

// FetchQueueEntries 拉取某个队列的实时排队单
func (s *QueueService) FetchQueueEntries(ctx context.Context, sess *model.Session, queueTypeID int64) ([]model.QueueEntry, error) {
	client := s.clients.Build(sess, httpx.Options{})

	data, err := client.Get(ctx, fmt.Sprintf("/queues/%d/getAllQueue", queueTypeID), nil)
	if err != nil {
		return nil, err
	}

	var list []model.QueueEntry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("排队单数据格式异常: %v", err)
	}
	return list, nil
}

// NextQueue 叫号：让当前队列前进一位
func (s *QueueService) NextQueue(ctx context.Context, sess *model.Session, queueTypeID int64) error {
	client := s.clients.Build(sess, httpx.Options{})
	_, err := client.Post(ctx, fmt.Sprintf("/queues/%d/next", queueTypeID), nil)
	return err
}

// CancelQueue 取消当前叫到的排队单
func (s *QueueService) CancelQueue(ctx context.Context, sess *model.Session, queueTypeID int64) error {
	client := s.clients.Build(sess, httpx.Options{})
	_, err := client.Post(ctx, fmt.Sprintf("/queues/%d/cancel", queueTypeID), nil)
	return err
}

// ==================== 仪表盘统计 ====================

// WeeklyStats 本周排队统计（按天聚合成 7 个桶）
// 任何一步失败都降级为零值序列，仪表盘不因此报错
func (s *QueueService) WeeklyStats(ctx context.Context, sess *model.Session, shopID model.ShopID) []utils.DayStat {
	now := time.Now()

	stats := make(map[string]*model.QueueStat)
	for _, qt := range s.cache.GetQueueTypes(shopID) {
		entries, err := s.FetchQueueEntries(ctx, sess, qt.ID)
		if err != nil {
			log.Printf("[Queue] 统计拉取排队单失败 queue_type=%d: %v", qt.ID, err)
			continue
		}
		for _, entry := range entries {
			day := entry.CreatedAt.Format("2006-01-02")
			stat, ok := stats[day]
			if !ok {
				t := entry.CreatedAt
				stat = &model.QueueStat{Timestamp: &t}
				stats[day] = stat
			}
			stat.TotalQueues++
			switch entry.Status {
			case model.QueueStatusWaiting:
				stat.WaitingCount++
			case model.QueueStatusCompleted:
				stat.CompletedCount++
			case model.QueueStatusCanceled:
				stat.CanceledCount++
			}
		}
	}

	flat := make([]model.QueueStat, 0, len(stats))
	for _, stat := range stats {
		flat = append(flat, *stat)
	}
	return utils.CalculateQueueInSevenDays(flat, now)
}
