package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func setupGuardRouter(codec *session.Codec, handlerCalls *int32) *gin.Engine {
	r := gin.New()
	merchant := r.Group("/merchant")
	merchant.Use(RequireSession(codec), RequireRole(model.RoleShop))
	merchant.GET("/dashboard", func(c *gin.Context) {
		atomic.AddInt32(handlerCalls, 1)
		sess := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"user_id": sess.UserID})
	})
	return r
}

func shopCookie(t *testing.T, codec *session.Codec, role string) *http.Cookie {
	t.Helper()
	value, err := codec.Encode(&model.Session{Token: "plain", UserID: 7, Role: role})
	if err != nil {
		t.Fatalf("编码会话失败: %v", err)
	}
	return &http.Cookie{Name: session.CookieName, Value: value}
}

// ==================== 单元测试 ====================

func TestRequireSession_NoCookie(t *testing.T) {
	var calls int32
	codec := session.NewCodec([]byte("guard-secret"), false)
	r := setupGuardRouter(codec, &calls)

	req := httptest.NewRequest(http.MethodGet, "/merchant/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("守卫拦截后业务 handler 不应执行")
	}
}

func TestRequireSession_ForgedCookie(t *testing.T) {
	var calls int32
	codec := session.NewCodec([]byte("guard-secret"), false)
	r := setupGuardRouter(codec, &calls)

	// 用别的密钥伪造
	forger := session.NewCodec([]byte("attacker-secret"), false)
	req := httptest.NewRequest(http.MethodGet, "/merchant/dashboard", nil)
	req.AddCookie(shopCookie(t, forger, model.RoleShop))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("伪造 Cookie 不应放行")
	}
}

func TestRequireRole_CustomerRejected(t *testing.T) {
	var calls int32
	codec := session.NewCodec([]byte("guard-secret"), false)
	r := setupGuardRouter(codec, &calls)

	req := httptest.NewRequest(http.MethodGet, "/merchant/dashboard", nil)
	req.AddCookie(shopCookie(t, codec, model.RoleCustomer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login?error=forbidden" {
		t.Errorf("Location = %q, want /login?error=forbidden", got)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("CUSTOMER 角色不应进入商户路由")
	}
}

func TestRequireSession_ValidShop(t *testing.T) {
	var calls int32
	codec := session.NewCodec([]byte("guard-secret"), false)
	r := setupGuardRouter(codec, &calls)

	req := httptest.NewRequest(http.MethodGet, "/merchant/dashboard", nil)
	req.AddCookie(shopCookie(t, codec, model.RoleShop))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("handlerCalls = %d, want 1", calls)
	}
}

func TestGetSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetSession(c) != nil {
		t.Error("未设置会话时 GetSession 应返回 nil")
	}
}
