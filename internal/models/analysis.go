package models

import "time"

// 분석 작업 상태값
const (
	AnalysisStatusCompleted = "completed"
	AnalysisStatusFailed    = "failed"
)

// Finding 심각도 (낮은 순)
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// 모듈에 전달되는 분석 요청
type AnalysisRequest struct {
	JobID       string                 `json:"job_id"`
	Target      string                 `json:"target"`
	ModelData   map[string]interface{} `json:"model_data,omitempty"`
	Params      map[string]interface{} `json:"params,omitempty"`
	RequestedBy string                 `json:"requested_by,omitempty"`
}

// 개별 발견 사항
type Finding struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation,omitempty"`
}

// 모듈이 반환하는 분석 결과
type AnalysisResult struct {
	JobID       string             `json:"job_id"`
	Module      string             `json:"module"`
	Status      string             `json:"status"`
	Summary     string             `json:"summary"`
	Findings    []Finding          `json:"findings"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	StartedAt   time.Time          `json:"started_at"`
	CompletedAt time.Time          `json:"completed_at"`
}

// DB에 저장되는 분석 이력
type AnalysisRecord struct {
	ID        int       `json:"id"`
	JobID     string    `json:"job_id"`
	UserID    int       `json:"-"`
	Module    string    `json:"module"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Result    string    `json:"result,omitempty"` // 결과 JSON 원문
	CreatedAt time.Time `json:"created_at"`
}
