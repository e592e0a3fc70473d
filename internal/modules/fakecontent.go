package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 가짜 콘텐츠(딥페이크 등) 탐지 모듈
// 콘텐츠 메타데이터 존재 여부만 확인하는 기초 점검
type FakeContentAnalyzer struct{}

func (a *FakeContentAnalyzer) Name() string { return "fakecontent" }

func (a *FakeContentAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "fakecontent",
		DisplayName:  "Fake Content Detection",
		Version:      Version,
		Capabilities: []string{"metadata_check"},
	}
}

func (a *FakeContentAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	contentType := stringParam(req.Params, "content_type")
	if contentType == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: content_type parameter is required", ErrInvalidRequest)
	}

	result := newResult(a.Name(), req, startedAt)

	// 출처 메타데이터가 없으면 검증 불가로 보고
	missing := []string{}
	for _, key := range []string{"source", "created_at", "checksum"} {
		if stringParam(req.Params, key) == "" {
			missing = append(missing, key)
		}
	}

	result.Metrics["missing_metadata"] = float64(len(missing))

	if len(missing) > 0 {
		result.Findings = append(result.Findings, models.Finding{
			Type:           "unverifiable_provenance",
			Severity:       models.SeverityMedium,
			Description:    fmt.Sprintf("Content of type %s is missing provenance metadata: %v.", contentType, missing),
			Recommendation: "Collect source, created_at and checksum before running detector backends.",
		})
	}

	result.Summary = fmt.Sprintf("Provenance check for %s content", contentType)
	return result, nil
}
