package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 적대적 공격 시뮬레이션 모듈
// 실제 공격 생성 알고리즘 없이 요청 파라미터 기반의 기초 점검만 수행함
type AdversarialAnalyzer struct{}

func (a *AdversarialAnalyzer) Name() string { return "adversarial" }

func (a *AdversarialAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "adversarial",
		DisplayName:  "Adversarial Attack Simulation",
		Version:      Version,
		Capabilities: []string{"simulate_attack"},
	}
}

func (a *AdversarialAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	if req.Target == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: target model is required", ErrInvalidRequest)
	}

	attackType := stringParam(req.Params, "attack_type")
	if attackType == "" {
		attackType = "baseline_probe"
	}

	result := newResult(a.Name(), req, startedAt)
	result.Summary = fmt.Sprintf("Simulating attack on model %s with attack type %s", req.Target, attackType)
	result.Findings = append(result.Findings, models.Finding{
		Type:           "robustness_review",
		Severity:       models.SeverityMedium,
		Description:    fmt.Sprintf("Attack surface of %s was registered for %s probing; no perturbation engine is attached yet.", req.Target, attackType),
		Recommendation: "Attach an evaluation backend before interpreting robustness scores.",
	})
	result.Metrics["requested_probes"] = float64(len(req.Params))
	return result, nil
}
