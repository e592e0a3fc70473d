package modules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 콘텐츠 모더레이션 모듈
// 카테고리별 키워드 목록 기반의 기초 필터
var moderationCategories = map[string][]string{
	"violence":   {"kill", "attack", "destroy", "bomb"},
	"harassment": {"idiot", "stupid", "loser"},
	"self_harm":  {"suicide", "self-harm"},
}

type ModerationAnalyzer struct{}

func (a *ModerationAnalyzer) Name() string { return "moderation" }

func (a *ModerationAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "moderation",
		DisplayName:  "Content Moderation",
		Version:      Version,
		Capabilities: []string{"keyword_filter"},
	}
}

func (a *ModerationAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	content := stringParam(req.Params, "content")
	if content == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: content parameter is required", ErrInvalidRequest)
	}

	result := newResult(a.Name(), req, startedAt)
	lowered := strings.ToLower(content)

	flagged := 0
	for category, keywords := range moderationCategories {
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				flagged++
				result.Findings = append(result.Findings, models.Finding{
					Type:           "flagged_content",
					Severity:       models.SeverityMedium,
					Description:    fmt.Sprintf("Keyword %q matched category %s.", keyword, category),
					Recommendation: "Route to human review; keyword matching alone is not a verdict.",
				})
				break // 카테고리당 1건만 보고
			}
		}
	}

	result.Metrics["flagged_categories"] = float64(flagged)
	result.Metrics["content_length"] = float64(len(content))

	if flagged == 0 {
		result.Summary = "No moderation categories matched"
	} else {
		result.Summary = fmt.Sprintf("%d moderation categories matched", flagged)
	}
	return result, nil
}
