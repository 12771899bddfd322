package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRCode 生成排队入口二维码，返回 data URI
// 顾客扫码进入对应队列的取号页
func GenerateQRCode(content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("qr content is empty")
	}

	png, err := qrcode.Encode(content, qrcode.High, 300)
	if err != nil {
		return "", fmt.Errorf("generate qr failed: %v", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
