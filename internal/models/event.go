package models

import "time"

// 웹 UI로 브로드캐스트되는 이벤트 타입
const (
	EventAnalysisQueued    = "analysis_queued"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
	EventModuleStatus      = "module_status"
	EventSimulationTurn    = "simulation_turn"
)

// 이벤트 허브 메시지
type Event struct {
	Type      string      `json:"type"`
	Module    string      `json:"module,omitempty"`
	JobID     string      `json:"job_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
