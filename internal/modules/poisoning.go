package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 데이터 포이즈닝 탐지 모듈
// 표본 중복만 세는 기초 점검
type PoisoningAnalyzer struct{}

func (a *PoisoningAnalyzer) Name() string { return "poisoning" }

func (a *PoisoningAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "poisoning",
		DisplayName:  "Data Poisoning Detection",
		Version:      Version,
		Capabilities: []string{"duplicate_scan"},
	}
}

func (a *PoisoningAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	samples := sliceParam(req.Params, "samples")
	if len(samples) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("%w: samples parameter is required", ErrInvalidRequest)
	}

	result := newResult(a.Name(), req, startedAt)

	// 동일 문자열 표본의 중복 횟수 집계
	seen := make(map[string]int)
	duplicates := 0
	for _, s := range samples {
		text, ok := s.(string)
		if !ok {
			continue
		}
		seen[text]++
		if seen[text] == 2 {
			duplicates++
		}
	}

	result.Metrics["sample_count"] = float64(len(samples))
	result.Metrics["duplicate_values"] = float64(duplicates)

	if duplicates > 0 {
		result.Findings = append(result.Findings, models.Finding{
			Type:           "duplicated_samples",
			Severity:       models.SeverityMedium,
			Description:    fmt.Sprintf("%d sample values appear more than once in %s.", duplicates, req.Target),
			Recommendation: "Deduplicate and trace the origin of repeated samples; repetition is a common poisoning vector.",
		})
	}

	result.Summary = fmt.Sprintf("Duplicate scan over %d samples", len(samples))
	return result, nil
}
