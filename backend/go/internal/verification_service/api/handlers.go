package api

import (
	"Sceptre/backend/go/internal/knowledge"
	"Sceptre/backend/go/internal/verification_service/service"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxImageBytes 限制用户上传图片的大小。
const maxImageBytes = 10 << 20

// Handler 封装了所有 API endpoint 的处理函数。
type Handler struct {
	service   *service.Service
	processor *service.ContentProcessor
	responder *service.Responder
	knowledge *knowledge.Manager
}

// NewHandler 创建一个新的 Handler 实例。
func NewHandler(s *service.Service, p *service.ContentProcessor, r *service.Responder, km *knowledge.Manager) *Handler {
	return &Handler{service: s, processor: p, responder: r, knowledge: km}
}

// VerifyRequest 定义了验证请求的 JSON 结构。
// Content 与 URL 二选一；图片通过 multipart 表单上传。
type VerifyRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Content   string `json:"content"`
	URL       string `json:"url"`
}

// Verify 处理内容验证请求。
// 支持两种提交方式: JSON (文本或 URL) 和 multipart 表单 (附带图片)。
func (h *Handler) Verify(c *gin.Context) {
	var sessionID string
	var content service.Content

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		sessionID = c.PostForm("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id 为必填字段"})
			return
		}
		content.Text = c.PostForm("content")
		content.URL = c.PostForm("url")

		if file, err := c.FormFile("image"); err == nil {
			if file.Size > maxImageBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "图片大小超出限制"})
				return
			}
			f, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer f.Close()
			image, err := io.ReadAll(f)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			content.Image = image
		}
	} else {
		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessionID = req.SessionID
		content.Text = req.Content
		content.URL = req.URL
	}

	// 将提交的内容解析成可供断言抽取的纯文本。
	text, err := h.processor.Resolve(c.Request.Context(), content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.VerifyClaims(c.Request.Context(), sessionID, text)

	c.JSON(http.StatusOK, gin.H{
		"score":       result.OverallScore,
		"sources":     result.Sources,
		"details":     result.Details,
		"timestamp":   result.Timestamp,
		"credibility": service.Credibility(result.OverallScore, len(result.Sources)),
	})
}

// SearchRequest 定义了独立搜索请求的 JSON 结构。
type SearchRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Query     string `json:"query" binding:"required"`
}

// Search 处理独立的证据搜索请求，结果同时写入会话知识库。
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.SearchDocuments(c.Request.Context(), req.SessionID, req.Query)
	c.JSON(http.StatusOK, result)
}

// ChatRequest 定义了对话请求的 JSON 结构。
type ChatRequest struct {
	SessionID string                `json:"session_id" binding:"required"`
	Query     string                `json:"query" binding:"required"`
	History   []service.ChatMessage `json:"history"`
}

// Chat 基于会话知识库中已收集的证据回答用户提问。
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.responder.Answer(c.Request.Context(), req.SessionID, req.Query, req.History)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// RefreshKnowledgeRequest 定义了知识库刷新请求的 JSON 结构。
type RefreshKnowledgeRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Topic     string `json:"topic" binding:"required"`
}

// RefreshKnowledge 针对指定话题执行一次搜索，并将结果注入会话知识库。
func (h *Handler) RefreshKnowledge(c *gin.Context) {
	var req RefreshKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.SearchDocuments(c.Request.Context(), req.SessionID, req.Topic)

	c.JSON(http.StatusOK, gin.H{
		"message":        "knowledge base refreshed",
		"topic":          req.Topic,
		"document_count": len(result.Results),
		"status":         result.Status,
	})
}

// Health 处理健康检查请求。
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
