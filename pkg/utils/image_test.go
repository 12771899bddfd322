package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsExternalImageURL(t *testing.T) {
	valid := []string{
		"https://cdn.example.com/a.png",
		"http://img.example.co.th/shop/1.jpg",
		"https://example.com:8443/x",
	}
	for _, u := range valid {
		if !IsExternalImageURL(u) {
			t.Errorf("IsExternalImageURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"/shop-logo.png",
		"ftp://example.com/a.png",
		"https://localhost/a.png",
		"data:image/png;base64,xxx",
		"https://via.placeholder.com/150", // 占位图服务
		"https://placehold.co/600x400",
	}
	for _, u := range invalid {
		if IsExternalImageURL(u) {
			t.Errorf("IsExternalImageURL(%q) = true, want false", u)
		}
	}
}

func TestNormalizeImage_EmptyOrInvalid(t *testing.T) {
	for _, u := range []string{"", "not-a-url", "/relative/path.png"} {
		got, err := NormalizeImage(u)
		if err != nil {
			t.Errorf("NormalizeImage(%q) 不应报错: %v", u, err)
		}
		if got != FallbackImagePath {
			t.Errorf("NormalizeImage(%q) = %q, want 占位图", u, got)
		}
	}
}

func TestNormalizeImage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake-png-bytes"))
	}))
	defer srv.Close()

	// httptest 地址是 127.0.0.1，过不了域名格式校验，这里直接测下载环节
	data, mime, err := DownloadImage(srv.URL + "/logo.png")
	if err != nil {
		t.Fatalf("下载失败: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestDownloadImage_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, _, err := DownloadImage(srv.URL + "/missing.png"); err == nil {
		t.Error("404 下载应返回错误")
	}
}

func TestDownloadImage_DetectsMime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 不设置 Content-Type，触发 DetectContentType
		w.Header()["Content-Type"] = nil
		w.Write([]byte("\x89PNG\r\n\x1a\n-------"))
	}))
	defer srv.Close()

	_, mime, err := DownloadImage(srv.URL)
	if err != nil {
		t.Fatalf("下载失败: %v", err)
	}
	if !strings.HasPrefix(mime, "image/png") {
		t.Errorf("mime = %q, 应根据魔数识别为 png", mime)
	}
}
