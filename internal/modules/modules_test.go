package modules

import (
	"context"
	"testing"

	"SAFE_AISafetySuite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{
		"adversarial", "bias", "ethics", "explainability", "fakecontent",
		"frauddetect", "moderation", "poisoning", "redblue",
	}, names)

	for _, name := range names {
		analyzer, exists := Get(name)
		require.True(t, exists, name)
		assert.Equal(t, name, analyzer.Name())
		assert.Equal(t, name, analyzer.Describe().Name)
		assert.NotEmpty(t, analyzer.Describe().Capabilities, name)
	}

	_, exists := Get("nope")
	assert.False(t, exists)
}

func TestAnalyzersAcceptValidRequests(t *testing.T) {
	tests := []struct {
		module string
		req    models.AnalysisRequest
	}{
		{"adversarial", models.AnalysisRequest{JobID: "j1", Target: "model-a", Params: map[string]interface{}{"attack_type": "noise_probe"}}},
		{"bias", models.AnalysisRequest{JobID: "j2", Target: "dataset-a", ModelData: map[string]interface{}{
			"groups": map[string]interface{}{"a": 100.0, "b": 20.0},
		}}},
		{"moderation", models.AnalysisRequest{JobID: "j3", Params: map[string]interface{}{"content": "hello there"}}},
		{"explainability", models.AnalysisRequest{JobID: "j4", Target: "model-a", Params: map[string]interface{}{
			"features": []interface{}{"age", "income"},
		}}},
		{"fakecontent", models.AnalysisRequest{JobID: "j5", Params: map[string]interface{}{"content_type": "image"}}},
		{"frauddetect", models.AnalysisRequest{JobID: "j6", Params: map[string]interface{}{
			"transactions": []interface{}{map[string]interface{}{"amount": 100.0}},
		}}},
		{"redblue", models.AnalysisRequest{JobID: "j7", Target: "m", Params: map[string]interface{}{"scenario": "prompt_injection"}}},
		{"poisoning", models.AnalysisRequest{JobID: "j8", Target: "dataset-a", Params: map[string]interface{}{
			"samples": []interface{}{"x", "y", "x"},
		}}},
		{"ethics", models.AnalysisRequest{JobID: "j9", Target: "system-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			analyzer, exists := Get(tt.module)
			require.True(t, exists)

			result, err := analyzer.Analyze(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.req.JobID, result.JobID)
			assert.Equal(t, tt.module, result.Module)
			assert.Equal(t, models.AnalysisStatusCompleted, result.Status)
			assert.NotEmpty(t, result.Summary)
			assert.False(t, result.CompletedAt.IsZero())
		})
	}
}

func TestAnalyzersRejectInvalidRequests(t *testing.T) {
	tests := []struct {
		module string
		req    models.AnalysisRequest
	}{
		{"adversarial", models.AnalysisRequest{JobID: "j1"}},                                                        // target 없음
		{"moderation", models.AnalysisRequest{JobID: "j2", Target: "x"}},                                           // content 없음
		{"fakecontent", models.AnalysisRequest{JobID: "j3", Target: "x"}},                                          // content_type 없음
		{"frauddetect", models.AnalysisRequest{JobID: "j4", Target: "x"}},                                          // transactions 없음
		{"poisoning", models.AnalysisRequest{JobID: "j5", Target: "x"}},                                            // samples 없음
		{"redblue", models.AnalysisRequest{JobID: "j6", Target: "x", Params: map[string]interface{}{"scenario": "nope"}}}, // 없는 시나리오
		{"ethics", models.AnalysisRequest{JobID: "j7"}},                                                            // target 없음
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			analyzer, exists := Get(tt.module)
			require.True(t, exists)

			_, err := analyzer.Analyze(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestModerationFlagsKeywords(t *testing.T) {
	analyzer, _ := Get("moderation")

	result, err := analyzer.Analyze(context.Background(), models.AnalysisRequest{
		JobID:  "j1",
		Params: map[string]interface{}{"content": "I will attack and destroy everything, you idiot"},
	})
	require.NoError(t, err)

	// violence + harassment 카테고리, 카테고리당 1건
	assert.Len(t, result.Findings, 2)
	assert.Equal(t, 2.0, result.Metrics["flagged_categories"])
}

func TestBiasImbalanceFinding(t *testing.T) {
	analyzer, _ := Get("bias")

	result, err := analyzer.Analyze(context.Background(), models.AnalysisRequest{
		JobID:  "j1",
		Target: "dataset",
		ModelData: map[string]interface{}{
			"groups": map[string]interface{}{"a": 400.0, "b": 50.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "representation_imbalance", result.Findings[0].Type)
	assert.Equal(t, models.SeverityHigh, result.Findings[0].Severity)
	assert.InDelta(t, 8.0, result.Metrics["imbalance_ratio"], 0.001)
}

func TestDefenderResponseSeverity(t *testing.T) {
	tests := []struct {
		move     string
		severity string
	}{
		{"data_exfiltration", models.SeverityCritical},
		{"credential_phishing", models.SeverityCritical},
		{"prompt injection payload", models.SeverityHigh},
		{"ignore_instructions", models.SeverityHigh},
		{"boundary_probing", models.SeverityMedium},
		{"query_flooding", models.SeverityMedium},
		{"something weird", models.SeverityLow},
		{"", models.SeverityLow},
	}
	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			response, severity := DefenderResponse(tt.move)
			assert.Equal(t, tt.severity, severity)
			assert.NotEmpty(t, response)
		})
	}
}

func TestRedBlueSingleTurnMode(t *testing.T) {
	analyzer, _ := Get("redblue")

	result, err := analyzer.Analyze(context.Background(), models.AnalysisRequest{
		JobID:  "j1",
		Target: "scenario-x",
		Params: map[string]interface{}{"attack_move": "data_exfiltration"},
	})
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, models.SeverityCritical, result.Findings[0].Severity)
	assert.Equal(t, 1.0, result.Metrics["turns"])
}

func TestRedBlueScriptedScenario(t *testing.T) {
	scenario, exists := GetScenario("prompt_injection")
	require.True(t, exists)

	analyzer, _ := Get("redblue")
	result, err := analyzer.Analyze(context.Background(), models.AnalysisRequest{
		JobID:  "j1",
		Target: "model-a",
		Params: map[string]interface{}{"scenario": "prompt_injection"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Findings, len(scenario.Moves))
	assert.Equal(t, float64(len(scenario.Moves)), result.Metrics["turns"])
}
