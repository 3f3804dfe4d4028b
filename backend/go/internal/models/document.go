package models

import (
	"fmt"
	"regexp"
	"time"
)

// SearchStatus 定义了一次证据搜索的结果状态枚举。
type SearchStatus string

const (
	SearchSuccess   SearchStatus = "success"    // 至少构建出一篇完整文档。
	SearchNoResults SearchStatus = "no_results" // 搜索完成但没有可信结果。
	SearchError     SearchStatus = "error"      // 搜索提供方层面的失败。
)

// urlPattern 用于校验文档 URL 必须是 http(s) 协议。
var urlPattern = regexp.MustCompile(`^https?://`)

// Document 表示一篇从网络上抓取到的证据文档。
// 它是整个验证流水线中的核心数据载体。
type Document struct {
	Title          string    `json:"title"`           // 文档标题。
	Snippet        string    `json:"snippet"`         // 搜索摘要。
	URL            string    `json:"url"`             // 文档来源 URL，作为去重主键。
	Content        string    `json:"content"`         // 抓取到的正文。
	RelevanceScore float64   `json:"relevance_score"` // 启发式相关性/可信度评分，范围 [0,1]。
	CreatedAt      time.Time `json:"created_at"`      // 文档入库时间。
}

// NewDocument 构建一篇证据文档，并校验 URL 格式。
// URL 不是 http(s) 协议时返回错误，调用方应丢弃该结果。
func NewDocument(title, snippet, url, content string, relevance float64) (Document, error) {
	if !urlPattern.MatchString(url) {
		return Document{}, fmt.Errorf("invalid URL format: %q", url)
	}
	return Document{
		Title:          title,
		Snippet:        snippet,
		URL:            url,
		Content:        content,
		RelevanceScore: relevance,
		CreatedAt:      time.Now(),
	}, nil
}

// RawResult 表示搜索提供方返回的一条原始命中记录。
// 正文尚未抓取，RelevanceScore 由可信度过滤器在入库时计算。
type RawResult struct {
	Title          string  `json:"title"`
	Snippet        string  `json:"snippet"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SearchResult 表示一次完整的证据搜索结果。
// ProviderHits 仅在命中全部被信任过滤器淘汰时记录原始命中数量：
// 命中为零与命中全部不可信是两种不同的降级情形，评分策略需要区分
// 它们。抓取失败导致的空结果不属于这两种情形，该字段保持为零。
type SearchResult struct {
	Status       SearchStatus `json:"status"`  // 搜索状态。
	Query        string       `json:"query"`   // 原始查询。
	Results      []Document   `json:"results"` // 按相关性降序排列的文档列表。
	ProviderHits int          `json:"-"`
}

// ClaimSource 表示支撑某条断言的一个证据来源。
type ClaimSource struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Snippet        string  `json:"snippet"`
	Claim          string  `json:"claim"`           // 该来源所支撑的断言原文。
	RelevanceScore float64 `json:"relevance_score"`
}

// VerificationResult 表示一次内容验证的最终结果。
type VerificationResult struct {
	OverallScore float64       `json:"score"`     // 总体可信度评分，范围 [0,1]。
	Sources      []ClaimSource `json:"sources"`   // 去重后的证据来源，至多 10 条。
	Details      string        `json:"details"`   // 人类可读的结果说明。
	Timestamp    time.Time     `json:"timestamp"` // 验证完成时间。
}
