/**
* Name: 			module.go
* Description: 		분석 모듈 공통 인터페이스와 모듈 카탈로그
* Workflow: 		모듈 바이너리가 이름으로 Analyzer를 선택해서 서빙
 */
package modules

import (
	"context"
	"errors"
	"sort"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

const Version = "0.1.0"

var ErrInvalidRequest = errors.New("invalid analysis request")

// 모든 분석 모듈이 구현하는 공통 인터페이스
type Analyzer interface {
	Name() string
	Describe() models.ModuleInfo
	Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error)
}

// 내장 모듈 카탈로그
var analyzers = map[string]Analyzer{
	"adversarial":    &AdversarialAnalyzer{},
	"bias":           &BiasAnalyzer{},
	"moderation":     &ModerationAnalyzer{},
	"explainability": &ExplainabilityAnalyzer{},
	"fakecontent":    &FakeContentAnalyzer{},
	"frauddetect":    &FraudAnalyzer{},
	"redblue":        &RedBlueAnalyzer{},
	"poisoning":      &PoisoningAnalyzer{},
	"ethics":         &EthicsAnalyzer{},
}

func Get(name string) (Analyzer, bool) {
	a, exists := analyzers[name]
	return a, exists
}

// 사용 가능한 모듈 이름 목록, 이름순 정렬
func Names() []string {
	names := make([]string, 0, len(analyzers))
	for name := range analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 결과 공통 필드 채우기
func newResult(module string, req models.AnalysisRequest, startedAt time.Time) models.AnalysisResult {
	return models.AnalysisResult{
		JobID:       req.JobID,
		Module:      module,
		Status:      models.AnalysisStatusCompleted,
		Findings:    []models.Finding{},
		Metrics:     map[string]float64{},
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}
}

// params에서 문자열 파라미터 추출
func stringParam(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// params에서 배열 파라미터 추출
func sliceParam(params map[string]interface{}, key string) []interface{} {
	if params == nil {
		return nil
	}
	if v, ok := params[key].([]interface{}); ok {
		return v
	}
	return nil
}
