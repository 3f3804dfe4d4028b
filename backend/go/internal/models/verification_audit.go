package models

import "time"

// AuditStatus 定义了验证审计记录的状态枚举。
type AuditStatus string

const (
	AuditCompleted AuditStatus = "COMPLETED" // 验证流程正常完成。
	AuditDegraded  AuditStatus = "DEGRADED"  // 验证完成但存在降级（部分断言无法核实）。
	AuditError     AuditStatus = "ERROR"     // 验证在最外层边界被兜底。
)

// VerificationAudit 定义了发送到 Kafka 的验证审计日志的统一结构。
type VerificationAudit struct {
	TraceID      string      `json:"trace_id"`
	SessionID    string      `json:"session_id"`
	Timestamp    time.Time   `json:"timestamp"`
	Status       AuditStatus `json:"status"`
	ContentType  string      `json:"content_type"`  // text / url / image。
	ClaimCount   int         `json:"claim_count"`   // 提取出的断言数量。
	SourceCount  int         `json:"source_count"`  // 去重后的证据来源数量。
	OverallScore float64     `json:"overall_score"` // 最终可信度评分。
	Verdict      string      `json:"verdict"`       // 可信度判定档位。
}
