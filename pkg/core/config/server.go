package config

import "time"

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	// Addr 监听地址
	// 默认: :8080
	Addr string `koanf:"addr"`
	// Mode gin 运行模式（debug, release, test）
	// 默认: release
	Mode string `koanf:"mode"`
	// AllowOrigins CORS 允许的来源
	AllowOrigins []string `koanf:"allow_origins"`
	// ShutdownTimeout 优雅关闭超时
	// 默认: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Validate 验证服务配置
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return ErrAddrRequired
	}
	switch c.Mode {
	case "debug", "release", "test":
		return nil
	default:
		return ErrInvalidServerMode
	}
}

// WithDefaults 返回带默认值的配置
func (c ServerConfig) WithDefaults() ServerConfig {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}
