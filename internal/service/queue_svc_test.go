package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopq_merchant_v1_202608/internal/api/dto"
	"shopq_merchant_v1_202608/internal/cache"
	"shopq_merchant_v1_202608/internal/model"
)

func TestQueueService_FetchQueueTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/queues" || r.URL.Query().Get("shop_id") != "100" {
			t.Errorf("未预期请求: %s %s", r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}`))
	}))
	defer srv.Close()

	c := cache.New(identityNormalize)
	svc := NewQueueService(newTestFactory(srv.URL), c)

	list := svc.FetchQueueTypes(context.Background(), testSession(), 100)
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if got := c.GetQueueTypes(100); len(got) != 2 {
		t.Error("拉取成功后应写入镜像")
	}
}

func TestQueueService_FetchQueueTypesDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := cache.New(identityNormalize)
	c.SetQueueTypes(100, []model.QueueType{{ID: 9, Name: "cached"}})
	svc := NewQueueService(newTestFactory(srv.URL), c)

	list := svc.FetchQueueTypes(context.Background(), testSession(), 100)
	if len(list) != 1 || list[0].Name != "cached" {
		t.Errorf("后端不可达时应降级返回旧镜像: %+v", list)
	}
}

func TestQueueService_CreateQueueTypeEndToEnd(t *testing.T) {
	// 为店铺 7(user)/100(shop) 创建一个队列类型后，该店铺的镜像必须包含它
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/queues":
			if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
				t.Errorf("创建应走多段上传: %q", ct)
			}
			r.ParseMultipartForm(1 << 20)
			if got := r.FormValue("name"); got != "VIP" {
				t.Errorf("name = %q", got)
			}
			w.Write([]byte(`{"data":{"id":3,"shop_id":100,"name":"VIP"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/queues":
			w.Write([]byte(`{"data":[{"id":3,"shop_id":100,"name":"VIP"}]}`))
		default:
			t.Errorf("未预期请求: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := cache.New(identityNormalize)
	svc := NewQueueService(newTestFactory(srv.URL), c)

	req := dto.QueueTypeReq{ShopID: 100, Name: "VIP", IsAvailable: true}
	if err := svc.CreateQueueType(context.Background(), testSession(), req, nil); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	list := c.GetQueueTypes(100)
	if len(list) != 1 || list[0].Name != "VIP" {
		t.Errorf("创建后镜像应包含新队列: %+v", list)
	}
}

func TestQueueService_CreateQueueTypeLocalUpsertFallback(t *testing.T) {
	// 创建成功但回源失败 → 把创建响应本地 upsert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/queues":
			w.Write([]byte(`{"data":{"id":3,"shop_id":100,"name":"VIP"}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := cache.New(identityNormalize)
	svc := NewQueueService(newTestFactory(srv.URL), c)

	req := dto.QueueTypeReq{ShopID: 100, Name: "VIP"}
	if err := svc.CreateQueueType(context.Background(), testSession(), req, nil); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	list := c.GetQueueTypes(100)
	if len(list) != 1 || list[0].ID != 3 {
		t.Errorf("回源失败时应本地合并: %+v", list)
	}
}

func TestQueueService_DeleteQueueTypeLocalFilterFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := cache.New(identityNormalize)
	c.SetQueueTypes(100, []model.QueueType{{ID: 1}, {ID: 2}})
	svc := NewQueueService(newTestFactory(srv.URL), c)

	if err := svc.DeleteQueueType(context.Background(), testSession(), 100, 1); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	list := c.GetQueueTypes(100)
	if len(list) != 1 || list[0].ID != 2 {
		t.Errorf("回源失败时应本地过滤: %+v", list)
	}
}

func TestQueueService_FetchQueueEntriesNotCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/queues/5/getAllQueue" {
			t.Errorf("path = %q", r.URL.Path)
		}
		calls++
		w.Write([]byte(`{"data":[{"id":11,"queue_number":"A001","status":"waiting"}]}`))
	}))
	defer srv.Close()

	svc := NewQueueService(newTestFactory(srv.URL), cache.New(identityNormalize))

	for i := 0; i < 2; i++ {
		list, err := svc.FetchQueueEntries(context.Background(), testSession(), 5)
		if err != nil {
			t.Fatalf("拉取失败: %v", err)
		}
		if len(list) != 1 || list[0].Number != "A001" {
			t.Errorf("list = %+v", list)
		}
	}
	// 实时数据不缓存，两次调用两次请求
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestQueueService_WeeklyStats(t *testing.T) {
	now := time.Now()
	today := now.Format(time.RFC3339)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/queues/1/getAllQueue":
			w.Write([]byte(`{"data":[
				{"id":1,"queue_number":"A001","status":"completed","created_at":"` + today + `"},
				{"id":2,"queue_number":"A002","status":"waiting","created_at":"` + today + `"},
				{"id":3,"queue_number":"A003","status":"canceled","created_at":"` + today + `"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := cache.New(identityNormalize)
	c.SetQueueTypes(100, []model.QueueType{{ID: 1, Name: "A"}})
	svc := NewQueueService(newTestFactory(srv.URL), c)

	buckets := svc.WeeklyStats(context.Background(), testSession(), 100)
	if len(buckets) != 7 {
		t.Fatalf("len = %d, want 7", len(buckets))
	}

	idx := int(now.Weekday())
	if buckets[idx].TotalQueues != 3 {
		t.Errorf("今天的 TotalQueues = %d, want 3", buckets[idx].TotalQueues)
	}
	if buckets[idx].WaitingCount != 1 || buckets[idx].CompletedCount != 1 || buckets[idx].CanceledCount != 1 {
		t.Errorf("状态计数不对: %+v", buckets[idx])
	}
}

func TestQueueService_NextQueue(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewQueueService(newTestFactory(srv.URL), cache.New(identityNormalize))
	if err := svc.NextQueue(context.Background(), testSession(), 5); err != nil {
		t.Fatalf("叫号失败: %v", err)
	}
	if gotPath != "POST /queues/5/next" {
		t.Errorf("请求 = %q", gotPath)
	}
}
