package models

import "time"

// SpeakerRole 定义了消息发送者的角色。
type SpeakerRole string

const (
	SpeakerUser  SpeakerRole = "user"  // 用户角色。
	SpeakerModel SpeakerRole = "model" // 模型角色。
)

// Content 包含了构成单个消息的多个部分。
type Content struct {
	// 可选。构成单个消息的部分列表。每个部分可能具有不同的 IANA MIME 类型。
	Parts []*Part `json:"parts,omitempty"`
	// 可选。内容的生产者。必须是 'user' 或 'model'。
	Role SpeakerRole `json:"role,omitempty"`
}

// Part 定义了消息的单个部分，可以包含文本或内联二进制数据。
// 推理服务被当作无状态的自由文本接口使用，因此这里只保留文本与图片两种形态。
type Part struct {
	// 可选。文本部分。
	Text string `json:"text,omitempty"`
	// 可选。内联字节数据（例如待分析的图片）。
	InlineData *Blob `json:"inlineData,omitempty"`
}

// Blob 包含了内联的二进制数据。
type Blob struct {
	// 必填。原始字节数据。
	Data []byte `json:"data,omitempty"`
	// 必填。源数据的 IANA 标准 MIME 类型。
	MIMEType string `json:"mimeType,omitempty"`
}

// GenerateContentRequest 定义了向推理服务发起生成请求的结构。
type GenerateContentRequest struct {
	Content []Content `json:"content,omitempty"` // 请求的内容列表。
}

// GenerateContentResponse 定义了推理服务返回的响应结构。
type GenerateContentResponse struct {
	Content      []Content `json:"content,omitempty"`      // 响应的内容列表。
	CreateTime   time.Time `json:"createTime,omitempty"`   // 响应创建时间。
	ResponseID   string    `json:"responseId,omitempty"`   // 响应ID。
	ModelVersion string    `json:"modelVersion,omitempty"` // 模型版本。
}

// TextPrompt 构造一个只包含单段文本的生成请求，这是验证流水线最常用的形态。
func TextPrompt(prompt string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Content: []Content{{
			Role:  SpeakerUser,
			Parts: []*Part{{Text: prompt}},
		}},
	}
}

// FirstText 返回响应中的第一段非空文本；响应为空时返回空字符串。
// 推理服务不保证结构化输出，调用方必须对返回文本做防御性解析。
func (r *GenerateContentResponse) FirstText() string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		for _, p := range c.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
