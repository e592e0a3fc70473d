package modules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

// 레드팀/블루팀 시뮬레이션 시나리오
type Scenario struct {
	Name        string
	Description string
	Moves       []string // 스크립트 실행 시 레드팀이 수행하는 공격 순서
}

var scenarios = map[string]Scenario{
	"prompt_injection": {
		Name:        "Prompt Injection",
		Description: "A scenario where the red team attempts to override system instructions through crafted inputs.",
		Moves:       []string{"ignore_instructions", "role_override", "data_exfiltration"},
	},
	"model_extraction": {
		Name:        "Model Extraction",
		Description: "A scenario where the red team probes the model API to reconstruct its behavior.",
		Moves:       []string{"query_flooding", "boundary_probing"},
	},
	"credential_phishing": {
		Name:        "Credential Phishing",
		Description: "A scenario where the red team targets operators with phishing messages.",
		Moves:       []string{"spoofed_login", "urgent_request"},
	},
}

func GetScenario(scenarioKey string) (Scenario, bool) {
	scenario, exists := scenarios[scenarioKey]
	return scenario, exists
}

// 레드팀/블루팀 시뮬레이션 모듈
type RedBlueAnalyzer struct{}

func (a *RedBlueAnalyzer) Name() string { return "redblue" }

func (a *RedBlueAnalyzer) Describe() models.ModuleInfo {
	return models.ModuleInfo{
		Name:         "redblue",
		DisplayName:  "Red Team / Blue Team Simulation",
		Version:      Version,
		Capabilities: []string{"scripted_simulation", "interactive_turn"},
	}
}

// 공격 수에 대한 블루팀 대응 평가
// 실시간 세션(/ws/simulation)과 스크립트 실행이 공유함
func DefenderResponse(attackMove string) (response string, severity string) {
	move := strings.ToLower(strings.TrimSpace(attackMove))
	switch {
	case move == "":
		return "Blue team holds position; no attack move received.", models.SeverityLow
	case strings.Contains(move, "exfiltration") || strings.Contains(move, "credential"):
		return fmt.Sprintf("Blue team escalates: move %q touches data boundaries, session quarantined.", attackMove), models.SeverityCritical
	case strings.Contains(move, "injection") || strings.Contains(move, "override") || strings.Contains(move, "ignore"):
		return fmt.Sprintf("Blue team blocks instruction tampering attempt %q and logs the payload.", attackMove), models.SeverityHigh
	case strings.Contains(move, "probe") || strings.Contains(move, "probing") || strings.Contains(move, "flooding"):
		return fmt.Sprintf("Blue team rate-limits the source of %q and raises a watch.", attackMove), models.SeverityMedium
	default:
		return fmt.Sprintf("Blue team observes unclassified move %q and records it for review.", attackMove), models.SeverityLow
	}
}

func (a *RedBlueAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	startedAt := time.Now()

	result := newResult(a.Name(), req, startedAt)

	// 단일 턴 모드: attack_move 파라미터가 있으면 해당 수만 평가
	if move := stringParam(req.Params, "attack_move"); move != "" {
		response, severity := DefenderResponse(move)
		result.Findings = append(result.Findings, models.Finding{
			Type:        "simulation_turn",
			Severity:    severity,
			Description: response,
		})
		result.Metrics["turns"] = 1
		result.Summary = fmt.Sprintf("Evaluated single attack move against %s", req.Target)
		return result, nil
	}

	// 스크립트 모드: 시나리오의 공격 순서를 차례로 실행
	scenarioKey := stringParam(req.Params, "scenario")
	scenario, exists := GetScenario(scenarioKey)
	if !exists {
		return models.AnalysisResult{}, fmt.Errorf("%w: unknown scenario key: %s", ErrInvalidRequest, scenarioKey)
	}

	for _, move := range scenario.Moves {
		select {
		case <-ctx.Done():
			return models.AnalysisResult{}, ctx.Err()
		default:
		}
		response, severity := DefenderResponse(move)
		result.Findings = append(result.Findings, models.Finding{
			Type:        "simulation_turn",
			Severity:    severity,
			Description: response,
		})
	}

	result.Metrics["turns"] = float64(len(scenario.Moves))
	result.Summary = fmt.Sprintf("Scenario %s completed in %d turns", scenario.Name, len(scenario.Moves))
	return result, nil
}
