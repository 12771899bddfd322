package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopq_merchant_v1_202608/internal/model"
	"shopq_merchant_v1_202608/internal/service"
	"shopq_merchant_v1_202608/internal/session"
	"shopq_merchant_v1_202608/pkg/httpx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func newAuthRouter(backendURL string) (*gin.Engine, *session.Codec) {
	factory := httpx.NewFactory(backendURL, "application/json", httpx.RetryPolicy{
		MaxRetries: 0,
		WaitTime:   time.Millisecond,
		Retryable:  httpx.DefaultRetryable,
	})
	codec := session.NewCodec([]byte("ctl-test-secret"), false)
	ctl := NewAuthController(service.NewAuthService(factory), codec)

	r := gin.New()
	r.POST("/login", ctl.Login)
	r.GET("/logout", ctl.Logout)
	r.POST("/forget-password", ctl.ForgetPassword)
	return r, codec
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 单元测试 ====================

func TestAuthController_LoginSuccessSetsCookie(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"data":{"token":"enc","id":7,"role":"SHOP"}}`))
		case "/auth/decrypt":
			w.Write([]byte(`{"data":{"plain_text":"bearer-plain"}}`))
		}
	}))
	defer backend.Close()

	r, codec := newAuthRouter(backend.URL)
	w := postForm(r, "/login", url.Values{"email": {"shop@example.com"}, "password": {"secret"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/merchant/dashboard", w.Header().Get("Location"))

	// Cookie 可被同一 codec 还原
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)

	sess := codec.Decode(cookies[0].Value)
	require.NotNil(t, sess)
	assert.Equal(t, "bearer-plain", sess.Token)
	assert.Equal(t, model.UserID(7), sess.UserID)
}

func TestAuthController_LoginValidationError(t *testing.T) {
	r, _ := newAuthRouter("http://unused.invalid")
	w := postForm(r, "/login", url.Values{"email": {"shop@example.com"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.MsgPasswordRequired)
	assert.Empty(t, w.Result().Cookies(), "校验失败不应发 Cookie")
}

func TestAuthController_LoginWrongPassword(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	r, _ := newAuthRouter(backend.URL)
	w := postForm(r, "/login", url.Values{"email": {"shop@example.com"}, "password": {"bad"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), service.MsgWrongCredentials)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthController_LogoutClearsCookie(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	r, codec := newAuthRouter(backend.URL)
	value, err := codec.Encode(&model.Session{Token: "t", UserID: 7, Role: model.RoleShop})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0, "登出应使 Cookie 立即过期")
}

func TestAuthController_ForgetPasswordBadInput(t *testing.T) {
	r, _ := newAuthRouter("http://unused.invalid")
	w := postForm(r, "/forget-password", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
