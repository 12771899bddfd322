package cache

import (
	"log"
	"sync"

	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/pkg/utils"
)

// NormalizeFunc 图片归一化函数，可在测试中替换
type NormalizeFunc func(rawURL string) (string, error)

// TenantCache 进程级租户数据镜像
// 后端 API 永远是数据源，这里只是读穿镜像，条目不做 TTL 淘汰
//
// 寻址约定（必须严格区分，详见 model/ids.go）：
//   - Shop        按 UserID
//   - Reminder    按 ShopID
//   - QueueType   按 ShopID
//
// 所有写操作持锁期间只动内存，网络 IO（图片归一化）一律在拿锁之前完成
type TenantCache struct {
	mu         sync.RWMutex
	shops      map[model.UserID]*model.Shop
	reminders  map[model.ShopID][]model.Reminder
	queueTypes map[model.ShopID][]model.QueueType
	normalize  NormalizeFunc
}

// New 创建缓存实例
// 显式构造、按需注入，不做包级单例，测试可各建各的
func New(normalize NormalizeFunc) *TenantCache {
	if normalize == nil {
		normalize = utils.NormalizeImage
	}
	return &TenantCache{
		shops:      make(map[model.UserID]*model.Shop),
		reminders:  make(map[model.ShopID][]model.Reminder),
		queueTypes: make(map[model.ShopID][]model.QueueType),
		normalize:  normalize,
	}
}

// ==================== Shop ====================

// GetShop 读取店铺镜像，没有返回 nil
func (c *TenantCache) GetShop(userID model.UserID) *model.Shop {
	c.mu.RLock()
	defer c.mu.RUnlock()

	shop, ok := c.shops[userID]
	if !ok {
		return nil
	}
	cloned := *shop
	return &cloned
}

// SetShop 整体覆盖店铺镜像，入库前归一化图片
// 归一化失败退回占位图并记日志，不阻断缓存更新
func (c *TenantCache) SetShop(userID model.UserID, shop *model.Shop) {
	if shop == nil {
		return
	}
	cloned := *shop
	cloned.ImageURL = c.normalizeOrFallback(cloned.ImageURL)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.shops[userID] = &cloned
}

// ToggleShopOpen 就地翻转营业状态
// 本地镜像更新：调用方必须先确认后端变更已成功
func (c *TenantCache) ToggleShopOpen(userID model.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if shop, ok := c.shops[userID]; ok {
		shop.IsOpen = !shop.IsOpen
	}
}

// ==================== Reminder ====================

// GetReminders 读取提醒列表，没有返回空切片
func (c *TenantCache) GetReminders(shopID model.ShopID) []model.Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := c.reminders[shopID]
	out := make([]model.Reminder, len(list))
	copy(out, list)
	return out
}

// SetReminders 整体覆盖提醒列表
func (c *TenantCache) SetReminders(shopID model.ShopID, list []model.Reminder) {
	cloned := make([]model.Reminder, len(list))
	copy(cloned, list)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reminders[shopID] = cloned
}

// AppendReminder 追加一条提醒，列表不存在则惰性初始化
func (c *TenantCache) AppendReminder(shopID model.ShopID, reminder model.Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reminders[shopID] = append(c.reminders[shopID], reminder)
}

// ==================== QueueType ====================

// GetQueueTypes 读取队列类型列表，没有返回空切片
func (c *TenantCache) GetQueueTypes(shopID model.ShopID) []model.QueueType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := c.queueTypes[shopID]
	out := make([]model.QueueType, len(list))
	copy(out, list)
	return out
}

// SetQueueTypes 整体覆盖队列类型列表，逐条归一化图片
func (c *TenantCache) SetQueueTypes(shopID model.ShopID, list []model.QueueType) {
	cloned := make([]model.QueueType, len(list))
	copy(cloned, list)
	for i := range cloned {
		cloned[i].ImageURL = c.normalizeOrFallback(cloned[i].ImageURL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queueTypes[shopID] = cloned
}

// UpsertQueueType 按 id 查找：找到就替换，找不到就追加
func (c *TenantCache) UpsertQueueType(shopID model.ShopID, qt model.QueueType) {
	qt.ImageURL = c.normalizeOrFallback(qt.ImageURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.queueTypes[shopID]
	for i := range list {
		if list[i].ID == qt.ID {
			list[i] = qt
			return
		}
	}
	c.queueTypes[shopID] = append(list, qt)
}

// RemoveQueueType 按 id 过滤删除，重复调用结果相同
func (c *TenantCache) RemoveQueueType(shopID model.ShopID, queueTypeID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.queueTypes[shopID]
	filtered := list[:0]
	for _, qt := range list {
		if qt.ID != queueTypeID {
			filtered = append(filtered, qt)
		}
	}
	c.queueTypes[shopID] = filtered
}

// ==================== 统计 ====================

// Stats 缓存规模快照（维护任务打日志用）
type Stats struct {
	Shops      int
	Reminders  int
	QueueTypes int
}

// Snapshot 当前缓存规模
func (c *TenantCache) Snapshot() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Shops:      len(c.shops),
		Reminders:  len(c.reminders),
		QueueTypes: len(c.queueTypes),
	}
}

// normalizeOrFallback 归一化图片，失败退回占位图
func (c *TenantCache) normalizeOrFallback(rawURL string) string {
	normalized, err := c.normalize(rawURL)
	if err != nil {
		log.Printf("[Cache] 图片归一化失败，使用占位图: %v", err)
		return utils.FallbackImagePath
	}
	return normalized
}
