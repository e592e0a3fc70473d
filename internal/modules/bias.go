package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 편향 탐지 모듈
// model_data의 그룹별 표본 수만 집계하는 기초 점검
type BiasAnalyzer struct{}

func (a *BiasAnalyzer) Name() string { return "bias" }

func (a *BiasAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "bias",
		DisplayName:  "Bias Detection",
		Version:      Version,
		Capabilities: []string{"representation_check"},
	}
}

func (a *BiasAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	if req.Target == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: target dataset is required", ErrInvalidRequest)
	}

	result := newResult(a.Name(), req, startedAt)

	// 그룹별 표본 수 집계 (groups: {"group_a": 120, "group_b": 30} 형태)
	groups, _ := req.ModelData["groups"].(map[string]interface{})
	var total, min, max float64
	for _, v := range groups {
		count, ok := v.(float64)
		if !ok {
			continue
		}
		total += count
		if min == 0 || count < min {
			min = count
		}
		if count > max {
			max = count
		}
	}

	result.Metrics["group_count"] = float64(len(groups))
	result.Metrics["sample_total"] = total

	if len(groups) >= 2 && min > 0 && max/min > 3 {
		result.Findings = append(result.Findings, models.Finding{
			Type:           "representation_imbalance",
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Largest group has %.0fx the samples of the smallest group in %s.", max/min, req.Target),
			Recommendation: "Review sampling strategy before training; imbalance above 3x is flagged.",
		})
		result.Metrics["imbalance_ratio"] = max / min
	}

	result.Summary = fmt.Sprintf("Representation check over %d groups in %s", len(groups), req.Target)
	return result, nil
}
