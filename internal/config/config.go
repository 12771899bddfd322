package config

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// 环境常量
const EnvProduction = "PRODUCTION"

// Config 服务配置，全部来自环境变量
type Config struct {
	BackendURL  string // 后端 REST API 基地址
	ContentType string // 默认请求 Content-Type，可被 CONTENT_TYPE 覆盖
	Env         string // PRODUCTION / 其他
	Port        string // 监听端口
	AuditDSN    string // 审计库 DSN，为空则不启用审计落库
}

// Load 读取配置
// 本地开发时自动加载 .env，生产环境直接读系统环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] 未找到 .env 文件，使用系统环境变量")
	}

	cfg := &Config{
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:8000"),
		ContentType: getEnv("CONTENT_TYPE", "application/json"),
		Env:         getEnv("ENV", "DEVELOPMENT"),
		Port:        getEnv("PORT", "3000"),
		AuditDSN:    getEnv("DATABASE_URL", ""),
	}
	return cfg
}

// IsProduction 是否为生产环境（控制 Cookie 的 Secure/HttpOnly）
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CookieSecret 会话签名密钥
// 沿用原有做法：密钥从后端地址派生，这里做一次 sha256 避免把 URL 原文当密钥
func (c *Config) CookieSecret() []byte {
	sum := sha256.Sum256([]byte(c.BackendURL))
	return []byte(hex.EncodeToString(sum[:]))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
