package utils

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// FallbackImagePath 图片缺失/非法时使用的本地占位图
const FallbackImagePath = "/shop-logo.png"

// externalImagePattern 严格的外链图片格式：http(s) + 域名
var externalImagePattern = regexp.MustCompile(`^https?://([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(:\d+)?(/\S*)?$`)

// placeholderHosts 占位图服务域名，不允许入库
var placeholderHosts = []string{
	"via.placeholder.com",
	"placehold.co",
	"placekitten.com",
	"dummyimage.com",
}

// IsExternalImageURL 校验是否为合法的外链图片地址
func IsExternalImageURL(rawURL string) bool {
	if !externalImagePattern.MatchString(rawURL) {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range placeholderHosts {
		if host == h {
			return false
		}
	}
	return true
}

// NormalizeImage 把远程图片地址归一化为可内嵌的 data URI
// 空地址或非法地址直接退回占位图（不算错误）；下载失败把错误交还调用方
// 注意：没有内部缓存，同一地址调两次就下载两次
func NormalizeImage(rawURL string) (string, error) {
	if rawURL == "" || !IsExternalImageURL(rawURL) {
		return FallbackImagePath, nil
	}

	data, mime, err := DownloadImage(rawURL)
	if err != nil {
		return "", err
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DownloadImage 下载网络图片，返回字节切片和 MIME 类型
func DownloadImage(rawURL string) ([]byte, string, error) {
	resp, err := http.Get(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("http get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body failed: %v", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	return data, mime, nil
}
