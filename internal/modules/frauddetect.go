package modules

import (
	"context"
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 사기 탐지 모듈
// 임계값 초과 거래만 표시하는 기초 점검
const fraudAmountThreshold = 10000.0

type FraudAnalyzer struct{}

func (a *FraudAnalyzer) Name() string { return "frauddetect" }

func (a *FraudAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "frauddetect",
		DisplayName:  "Fraud Detection",
		Version:      Version,
		Capabilities: []string{"threshold_screen"},
	}
}

func (a *FraudAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	transactions := sliceParam(req.Params, "transactions")
	if len(transactions) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("%w: transactions parameter is required", ErrInvalidRequest)
	}

	result := newResult(a.Name(), req, startedAt)

	flagged := 0
	for i, t := range transactions {
		tx, ok := t.(map[string]interface{})
		if !ok {
			continue
		}
		amount, _ := tx["amount"].(float64)
		if amount > fraudAmountThreshold {
			flagged++
			result.Findings = append(result.Findings, models.Finding{
				Type:           "high_value_transaction",
				Severity:       models.SeverityHigh,
				Description:    fmt.Sprintf("Transaction %d exceeds the screening threshold (%.2f > %.2f).", i, amount, fraudAmountThreshold),
				Recommendation: "Queue for manual fraud review.",
			})
		}
	}

	result.Metrics["transaction_count"] = float64(len(transactions))
	result.Metrics["flagged_count"] = float64(flagged)
	result.Summary = fmt.Sprintf("Screened %d transactions, %d flagged", len(transactions), flagged)
	return result, nil
}
