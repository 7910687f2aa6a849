package config

// CatalogConfig 场景目录配置
type CatalogConfig struct {
	// Path 外部场景目录（YAML 文件或目录），为空时使用内置目录
	Path string `koanf:"path"`
	// TokenDriftTolerance 编写 Token 数与实测值允许的相对偏差
	// 默认: 0（关闭审计）
	TokenDriftTolerance float64 `koanf:"token_drift_tolerance"`
	// TokenModel 审计使用的 tiktoken 模型
	// 默认: gpt-4o
	TokenModel string `koanf:"token_model"`
	// Strict 为 true 时编写警告也视为加载失败
	Strict bool `koanf:"strict"`
}

// Validate 验证目录配置
func (c *CatalogConfig) Validate() error {
	if c.TokenDriftTolerance < 0 {
		return ErrInvalidDriftTolerance
	}
	return nil
}

// WithDefaults 返回带默认值的配置
func (c CatalogConfig) WithDefaults() CatalogConfig {
	if c.TokenModel == "" {
		c.TokenModel = "gpt-4o"
	}
	return c
}

// SelectorConfig 响应选择器的启发式权重
type SelectorConfig struct {
	// MatchWeight 每个命中组件的奖励
	// 默认: 3
	MatchWeight int `koanf:"match_weight"`
	// MissingWeight 每个缺失必需组件的惩罚
	// 默认: 5
	MissingWeight int `koanf:"missing_weight"`
	// ExtraWeight 每个多余组件的惩罚
	// 默认: 1
	ExtraWeight int `koanf:"extra_weight"`
}

// Validate 验证选择器配置
func (c *SelectorConfig) Validate() error {
	if c.MatchWeight < 0 || c.MissingWeight < 0 || c.ExtraWeight < 0 {
		return ErrInvalidWeight
	}
	return nil
}

// WithDefaults 返回带默认值的配置
func (c SelectorConfig) WithDefaults() SelectorConfig {
	if c.MatchWeight == 0 && c.MissingWeight == 0 && c.ExtraWeight == 0 {
		c.MatchWeight = 3
		c.MissingWeight = 5
		c.ExtraWeight = 1
	}
	return c
}
