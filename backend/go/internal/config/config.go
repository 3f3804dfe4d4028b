package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// AppInfo 对应 'app' 部分，包含应用程序的基本信息。
type AppInfo struct {
	Name        string `yaml:"name"`        // 应用程序名称
	Version     string `yaml:"version"`     // 应用程序版本
	Environment string `yaml:"environment"` // 运行环境 (例如: "development", "production")
}

// LoggerConfig 定义了日志记录器的配置。
type LoggerConfig struct {
	Level string `yaml:"level"` // 日志级别 (例如: "info", "debug", "warn", "error")
}

// AuthConfig 用于配置 API 层的认证设置。
// 令牌的签发与用户凭据存储由外部服务负责，这里只做校验。
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`   // 是否启用 JWT 校验
	JwtSecret string `yaml:"jwtSecret"` // JWT 密钥
}

// GeminiConfig 包含了 Gemini 模型的配置。
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"` // Gemini API 密钥
	Model  string `yaml:"model"`  // Gemini 模型名称
}

// OpenAIConfig 包含了 OpenAI 模型的配置。
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"` // OpenAI API 密钥
	Model  string `yaml:"model"`  // OpenAI 模型名称
}

// OllamaConfig 包含了本地 Ollama 服务的配置。
type OllamaConfig struct {
	BaseURL string `yaml:"baseURL"` // Ollama 服务地址 (默认: "http://localhost:11434")
	Model   string `yaml:"model"`   // Ollama 模型名称
}

// LLMConfig 包含了不同推理服务提供商的配置。
type LLMConfig struct {
	Provider       string       `yaml:"provider"`       // 提供商 (例如: "gemini", "openai", "ollama")
	Gemini         GeminiConfig `yaml:"gemini"`         // Gemini 模型配置
	OpenAI         OpenAIConfig `yaml:"openai"`         // OpenAI 模型配置
	Ollama         OllamaConfig `yaml:"ollama"`         // Ollama 模型配置
	TimeoutSeconds int          `yaml:"timeoutSeconds"` // 单次推理调用的超时时间 (秒)，默认 10
}

// GoogleSearchConfig 包含了 Google Custom Search API 的配置。
type GoogleSearchConfig struct {
	APIKey   string `yaml:"apiKey"`   // Google API 密钥
	EngineID string `yaml:"engineID"` // 自定义搜索引擎 ID (cx)
}

// SearchConfig 定义了证据搜索子系统的配置。
type SearchConfig struct {
	Provider            string               `yaml:"provider"`            // 搜索提供商 (目前支持: "google")
	Google              GoogleSearchConfig   `yaml:"google"`              // Google Custom Search 配置
	ResultCount         int                  `yaml:"resultCount"`         // 每次搜索请求的结果数量，默认 5
	QueryTimeoutSeconds int                  `yaml:"queryTimeoutSeconds"` // 搜索请求超时 (秒)，默认 10
	FetchTimeoutSeconds int                  `yaml:"fetchTimeoutSeconds"` // 单篇文档抓取超时 (秒)，默认 5
	CacheTTLSeconds     int                  `yaml:"cacheTTLSeconds"`     // 搜索结果缓存的存活时间 (秒)，默认 3600
	CacheCapacity       int                  `yaml:"cacheCapacity"`       // 搜索结果缓存的容量上限，默认 100
	TrustedPatterns     []string             `yaml:"trustedPatterns"`     // 额外的可信域名 glob 模式 (如 "*.ac.uk")
	CircuitBreaker      CircuitBreakerConfig `yaml:"circuitBreaker"`      // 出站搜索请求的熔断配置
}

// VerificationConfig 定义了断言验证流水线的配置。
type VerificationConfig struct {
	MaxClaims        int `yaml:"maxClaims"`        // 单次验证最多处理的断言数量，默认 5
	EvidencePerClaim int `yaml:"evidencePerClaim"` // 每条断言送入推理服务的证据上限，默认 5
	SourcesPerClaim  int `yaml:"sourcesPerClaim"`  // 每条断言计入最终来源的证据上限，默认 3
	MaxSources       int `yaml:"maxSources"`       // 最终结果中保留的来源上限，默认 10
}

// KnowledgeConfig 定义了会话知识库的配置。
type KnowledgeConfig struct {
	MaxDocuments int `yaml:"maxDocuments"` // 单个会话保留的文档上限，默认 100
	MaxAgeHours  int `yaml:"maxAgeHours"`  // 文档的最大存活时间 (小时)，默认 24
}

// KafkaConfig 定义了 Kafka 消息队列的连接配置。
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"` // Kafka Broker 地址列表
	Topic   string   `yaml:"topic"`   // 审计日志主题，默认 "verification_audit"
}

// AuditConfig 定义了验证审计日志的配置。
type AuditConfig struct {
	Enabled bool        `yaml:"enabled"` // 是否将验证结果发布到 Kafka
	Kafka   KafkaConfig `yaml:"kafka"`   // Kafka 连接配置
}

// MiddlewareConfig 包含所有中间件的配置。
type MiddlewareConfig struct {
	RateLimiter    RateLimiterConfig    `yaml:"rateLimiter"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker"`
}

// RateLimiterConfig 定义了限流器的配置。
type RateLimiterConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Algorithm   string            `yaml:"algorithm"` // 支持: "tokenBucket", "fixedWindow"
	TokenBucket TokenBucketConfig `yaml:"tokenBucket"`
	FixedWindow FixedWindowConfig `yaml:"fixedWindow"`
}

// TokenBucketConfig 定义了令牌桶算法的配置。
type TokenBucketConfig struct {
	Rate     float64 `yaml:"rate"` // 每秒速率
	Capacity int     `yaml:"capacity"`
}

// FixedWindowConfig 定义了固定窗口计数器算法的配置。
type FixedWindowConfig struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"` // 例如: "1m", "30s"
}

// CircuitBreakerConfig 定义了熔断器的配置。
type CircuitBreakerConfig struct {
	Enabled          bool   `yaml:"enabled"`
	FailureThreshold uint32 `yaml:"failureThreshold"`
	SuccessThreshold uint32 `yaml:"successThreshold"`
	Timeout          string `yaml:"timeout"` // 例如: "30s"
}

// ServerConfig 定义了 HTTP 服务的监听配置。
type ServerConfig struct {
	Port int `yaml:"port"` // 监听端口，默认 8080
}

// AppConfig 是整个 YAML 文件的根结构，包含了应用程序的所有配置。
type AppConfig struct {
	App          AppInfo            `yaml:"app"`          // 应用程序信息
	Server       ServerConfig       `yaml:"server"`       // HTTP 服务配置
	Auth         AuthConfig         `yaml:"auth"`         // 认证配置
	LLM          LLMConfig          `yaml:"llm"`          // 推理服务配置
	Search       SearchConfig       `yaml:"search"`       // 证据搜索配置
	Verification VerificationConfig `yaml:"verification"` // 验证流水线配置
	Knowledge    KnowledgeConfig    `yaml:"knowledge"`    // 会话知识库配置
	Logger       LoggerConfig       `yaml:"logger"`       // 日志记录器配置
	Audit        AuditConfig        `yaml:"audit"`        // 审计日志配置
	Middleware   MiddlewareConfig   `yaml:"middleware"`   // 中间件配置
}

// LoadConfig 函数从指定路径加载并解析 YAML 配置文件。
//
// 参数:
//
//	path: YAML 配置文件的路径。
//
// 返回值:
//
//	*AppConfig: 解析后的应用程序配置结构体。
//	error: 如果文件读取或解析失败，则返回错误。
func LoadConfig(path string) (*AppConfig, error) {
	// 读取 YAML 文件内容。
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取 YAML 文件 '%s': %w", path, err)
	}
	var cfg AppConfig // 声明一个AppConfig变量用于存储解析后的配置。
	// 将 YAML 内容解析到 cfg 结构体中。
	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		return nil, fmt.Errorf("解析 YAML 文件失败: %w", err)
	}
	return &cfg, nil // 返回解析后的配置和nil错误。
}
