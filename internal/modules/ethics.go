package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 윤리 체크리스트 어시스턴트 모듈
// 고정된 점검 항목을 돌려주는 기초 어시스턴트
var ethicsChecklist = []string{
	"Document the intended use and the excluded uses of the system.",
	"Identify who is affected when the system is wrong.",
	"Confirm a human escalation path exists for contested decisions.",
	"Record the provenance of training data.",
}

type EthicsAnalyzer struct{}

func (a *EthicsAnalyzer) Name() string { return "ethics" }

func (a *EthicsAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "ethics",
		DisplayName:  "Ethical Assistant",
		Version:      Version,
		Capabilities: []string{"checklist"},
	}
}

func (a *EthicsAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	if req.Target == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: target system is required", ErrInvalidRequest)
	}

	result := newResult(a.Name(), req, startedAt)

	for _, item := range ethicsChecklist {
		result.Findings = append(result.Findings, models.Finding{
			Type:        "checklist_item",
			Severity:    models.SeverityLow,
			Description: item,
		})
	}

	result.Metrics["checklist_items"] = float64(len(ethicsChecklist))
	result.Summary = fmt.Sprintf("Ethics checklist generated for %s", req.Target)
	return result, nil
}
