package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 설명가능성(XAI) 모듈
// 전달된 feature 목록을 그대로 해석 대상으로 등록하는 기초 점검
type ExplainabilityAnalyzer struct{}

func (a *ExplainabilityAnalyzer) Name() string { return "explainability" }

func (a *ExplainabilityAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "explainability",
		DisplayName:  "Explainability (XAI)",
		Version:      Version,
		Capabilities: []string{"feature_inventory"},
	}
}

func (a *ExplainabilityAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	if req.Target == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: target model is required", ErrInvalidRequest)
	}

	features := sliceParam(req.Params, "features")

	result := newResult(a.Name(), req, startedAt)
	result.Metrics["feature_count"] = float64(len(features))

	if len(features) == 0 {
		result.Findings = append(result.Findings, models.Finding{
			Type:           "missing_feature_schema",
			Severity:       models.SeverityLow,
			Description:    fmt.Sprintf("No feature schema was provided for %s; attribution cannot be scoped.", req.Target),
			Recommendation: "Provide a features list so attribution runs can be scheduled.",
		})
	}

	result.Summary = fmt.Sprintf("Registered %d features of %s for attribution", len(features), req.Target)
	return result, nil
}
