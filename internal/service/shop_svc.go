package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/cache"
	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/pkg/httpx"
)

// ShopService 店铺档案服务
// 后端是唯一数据源，缓存只做读穿镜像；写操作完成后一律回源刷新
type ShopService struct {
	clients *httpx.Factory
	cache   *cache.TenantCache
}

// NewShopService 工厂方法
func NewShopService(clients *httpx.Factory, tenantCache *cache.TenantCache) *ShopService {
	return &ShopService{clients: clients, cache: tenantCache}
}

// FetchShop 拉取店铺档案并刷新镜像（loader 路径）
// 后端不可达时降级返回旧镜像，旧镜像也没有才把错误交给上层
func (s *ShopService) FetchShop(ctx context.Context, sess *model.Session) (*model.Shop, error) {
	shop, err := s.fetchRemote(ctx, sess)
	if err != nil {
		if cached := s.cache.GetShop(sess.UserID); cached != nil {
			log.Printf("[Shop] 拉取店铺失败，降级使用缓存: %v", err)
			return cached, nil
		}
		return nil, err
	}
	return shop, nil
}

// fetchRemote 回源拉取，成功后覆盖镜像
func (s *ShopService) fetchRemote(ctx context.Context, sess *model.Session) (*model.Shop, error) {
	client := s.clients.Build(sess, httpx.Options{})

	data, err := client.Get(ctx, fmt.Sprintf("/users/%d/shop", sess.UserID), nil)
	if err != nil {
		return nil, err
	}

	var shop model.Shop
	if err := json.Unmarshal(data, &shop); err != nil {
		return nil, fmt.Errorf("店铺数据解析失败: %v", err)
	}

	s.cache.SetShop(sess.UserID, &shop)
	return s.cache.GetShop(sess.UserID), nil
}

// shopID 取当前会话对应的店铺 ID，镜像没有就先回源一次
func (s *ShopService) shopID(ctx context.Context, sess *model.Session) (model.ShopID, error) {
	if shop := s.cache.GetShop(sess.UserID); shop != nil {
		return shop.ID, nil
	}
	shop, err := s.fetchRemote(ctx, sess)
	if err != nil {
		return 0, err
	}
	return shop.ID, nil
}

// ShopIDOf 暴露给其他服务/控制器使用
func (s *ShopService) ShopIDOf(ctx context.Context, sess *model.Session) (model.ShopID, error) {
	return s.shopID(ctx, sess)
}

// UpdateShop 更新店铺资料，成功后回源刷新镜像
func (s *ShopService) UpdateShop(ctx context.Context, sess *model.Session, req dto.UpdateShopReq) (*model.Shop, error) {
	shopID, err := s.shopID(ctx, sess)
	if err != nil {
		return nil, err
	}

	client := s.clients.Build(sess, httpx.Options{})
	if _, err := client.Put(ctx, fmt.Sprintf("/shops/%d", shopID), req); err != nil {
		return nil, err
	}

	return s.FetchShop(ctx, sess)
}

// ToggleOpen 切换营业状态
// 后端确认成功后只翻转本地镜像，不回源（该接口语义就是布尔翻转）
func (s *ShopService) ToggleOpen(ctx context.Context, sess *model.Session) (*model.Shop, error) {
	shopID, err := s.shopID(ctx, sess)
	if err != nil {
		return nil, err
	}

	client := s.clients.Build(sess, httpx.Options{})
	if _, err := client.Put(ctx, fmt.Sprintf("/shops/%d/is-open", shopID), nil); err != nil {
		return nil, err
	}

	s.cache.ToggleShopOpen(sess.UserID)
	return s.cache.GetShop(sess.UserID), nil
}

// UploadAvatar 透传店铺头像（多段上传），成功后回源刷新镜像
func (s *ShopService) UploadAvatar(ctx context.Context, sess *model.Session, filename string, file io.Reader) error {
	shopID, err := s.shopID(ctx, sess)
	if err != nil {
		return err
	}

	client := s.clients.Build(sess, httpx.Options{IsFormData: true})
	_, err = client.PostMultipart(ctx, fmt.Sprintf("/shops/%d/avatar", shopID), nil, httpx.File{
		Field:  "image",
		Name:   filename,
		Reader: file,
	})
	if err != nil {
		return err
	}

	if _, err := s.fetchRemote(ctx, sess); err != nil {
		log.Printf("[Shop] 头像上传后刷新镜像失败: %v", err)
	}
	return nil
}
