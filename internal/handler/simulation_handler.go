/**
* Name: 			simulation_handler.go
* Description: 		레드팀/블루팀 실시간 시뮬레이션 세션
* Workflow: 		WS 연결 -> 턴 단위로 redblue 모듈 호출 -> 응답 중계 -> 종료 시 이력 저장
 */
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"SAFE_AISafetySuite/internal/auth"
	"SAFE_AISafetySuite/internal/models"
	"SAFE_AISafetySuite/internal/modules"
	"SAFE_AISafetySuite/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HandleSimulation godoc
// @Summary      시뮬레이션 WebSocket 연결
// @Description  지정된 시나리오로 레드팀/블루팀 실시간 시뮬레이션 세션을 시작합니다.
// @Description  클라이언트가 공격 수(텍스트)를 보내면 redblue 모듈의 방어 평가가 턴 단위로 돌아옵니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         WebSocket
// @Param        token    query string true "로그인 시 발급받은 JWT 토큰"
// @Param        scenario query string true "시나리오 키 (예: prompt_injection)"
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      400 {object} handler.ErrorResponse "잘못된 시나리오 키"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/simulation [get]
func HandleSimulation(c *gin.Context) {
	// URL Query 파라미터 추출
	tokenString := c.Query("token")
	scenarioKey := c.Query("scenario")

	// 사용자 토큰 검증
	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	username := claims.Username

	// 시나리오 검증
	scenario, exists := modules.GetScenario(scenarioKey)
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario key"})
		return
	}
	log.Printf("User %s connected with scenario key: %s", username, scenarioKey)

	// WebSocket 연결 업그레이드와 종료
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error: Failed to upgrade to WebSocket : User %s with %v", username, err)
		return
	}
	defer conn.Close()

	// 초기 메시지 전송
	initialMessage := fmt.Sprintf("Start Scenario %s: %s", scenario.Name, scenario.Description)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(initialMessage)); err != nil {
		log.Printf("Error sending message to user %s: %v", username, err)
		return
	}

	manageSimulationSession(conn, username, scenarioKey)
}

// 시뮬레이션 세션 턴 기록
type simulationTurn struct {
	AttackMove string `json:"attack_move"`
	Response   string `json:"response"`
	Severity   string `json:"severity"`
}

func manageSimulationSession(conn *websocket.Conn, username, scenarioKey string) {
	sessionID := uuid.New().String()
	log.Printf("Simulation session started for user: %s, session: %s", username, sessionID)

	var transcript []simulationTurn

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message from user %s: %v", username, err)
			break ReadLoop
		}

		if messageType != websocket.TextMessage {
			log.Printf("Unsupported message type from user %s: %d", username, messageType)
			continue
		}

		// 공격 수를 redblue 모듈로 보내 블루팀 평가 수신
		turn, err := evaluateTurn(sessionID, scenarioKey, username, string(message))
		if err != nil {
			log.Printf("Error evaluating move for user %s: %v", username, err)
			if writeErr := conn.WriteMessage(websocket.TextMessage, []byte("Blue team unavailable, move not evaluated")); writeErr != nil {
				break ReadLoop
			}
			continue
		}
		transcript = append(transcript, turn)

		payload, err := json.Marshal(turn)
		if err != nil {
			log.Printf("Error marshaling turn for user %s: %v", username, err)
			break ReadLoop
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error sending message to user %s: %v", username, err)
			break ReadLoop
		}

		eventHub.Broadcast(models.Event{
			Type:   models.EventSimulationTurn,
			Module: "redblue",
			JobID:  sessionID,
			Data:   turn,
		})
	}

	saveSimulationTranscript(username, sessionID, scenarioKey, transcript)
	log.Printf("Simulation session ended for user: %s", username)
}

// 단일 공격 수를 redblue 모듈에 디스패치하고 턴 기록으로 변환
func evaluateTurn(sessionID, scenarioKey, username, attackMove string) (simulationTurn, error) {
	mod, err := moduleRegistry.Get("redblue")
	if err != nil {
		return simulationTurn{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := dispatcher.Dispatch(ctx, mod, models.AnalysisRequest{
		JobID:       sessionID,
		Target:      scenarioKey,
		Params:      map[string]interface{}{"attack_move": attackMove},
		RequestedBy: username,
	})
	if err != nil {
		return simulationTurn{}, err
	}

	turn := simulationTurn{AttackMove: attackMove}
	if len(result.Findings) > 0 {
		turn.Response = result.Findings[0].Description
		turn.Severity = result.Findings[0].Severity
	} else {
		turn.Response = result.Summary
		turn.Severity = models.SeverityLow
	}
	return turn, nil
}

// 세션 종료 시 전체 턴 기록을 이력으로 저장
func saveSimulationTranscript(username, sessionID, scenarioKey string, transcript []simulationTurn) {
	if len(transcript) == 0 {
		return
	}

	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		log.Printf("saveSimulationTranscript(): failed to get user id: %v", err)
		return
	}

	data, err := json.Marshal(transcript)
	if err != nil {
		log.Printf("saveSimulationTranscript(): failed to marshal transcript: %v", err)
		return
	}

	rec := models.AnalysisRecord{
		JobID:     sessionID,
		Module:    "redblue",
		Target:    scenarioKey,
		Status:    models.AnalysisStatusCompleted,
		Result:    string(data),
		CreatedAt: time.Now(),
	}
	if err := storage.CreateAnalysis(userID, rec); err != nil {
		log.Printf("saveSimulationTranscript(): failed to store transcript: %v", err)
	}
}
