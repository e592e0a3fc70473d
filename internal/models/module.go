package models

import "time"

// 모듈 상태값 (헬스체커가 갱신)
const (
	ModuleStatusUnknown     = "unknown"
	ModuleStatusHealthy     = "healthy"
	ModuleStatusUnreachable = "unreachable"
)

// 레지스트리에 등록된 분석 모듈 정보
type ModuleDescriptor struct {
	Name         string    `json:"name" yaml:"name"`
	DisplayName  string    `json:"display_name" yaml:"display_name"`
	BaseURL      string    `json:"base_url" yaml:"base_url"`
	Capabilities []string  `json:"capabilities" yaml:"capabilities"`
	Status       string    `json:"status" yaml:"-"`
	LastChecked  time.Time `json:"last_checked" yaml:"-"`
}

// 모듈 자기소개 (/info 응답)
type ModuleInfo struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}
