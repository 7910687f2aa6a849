package config

import "errors"

// 配置验证相关错误
var (
	// ErrInvalidDriftTolerance Token 偏差容忍度无效
	ErrInvalidDriftTolerance = errors.New("token drift tolerance must be non-negative")
	// ErrInvalidWeight 启发式权重无效
	ErrInvalidWeight = errors.New("selector weights must be non-negative")
	// ErrAddrRequired 监听地址必填
	ErrAddrRequired = errors.New("server address is required")
	// ErrInvalidServerMode 服务运行模式无效
	ErrInvalidServerMode = errors.New("server mode must be one of debug, release, test")
	// ErrUnsupportedFormat 不支持的配置文件格式
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)
