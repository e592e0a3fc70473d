/**
* Name: 			analysis_handler.go
* Description: 		분석 요청 라우팅 및 이력 조회 핸들러
* Workflow: 		요청 검증 -> 모듈 디스패치 -> 결과 저장 -> 이벤트 브로드캐스트
 */
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"SAFE_AISafetySuite/internal/dispatch"
	"SAFE_AISafetySuite/internal/models"
	"SAFE_AISafetySuite/internal/registry"
	"SAFE_AISafetySuite/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// /api/analyze/{module} 요청 바디
type AnalyzeRequest struct {
	Target    string                 `json:"target" example:"sentiment-model-v2"`
	ModelData map[string]interface{} `json:"model_data,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// 분석 이력 목록 응답 (Wrapper)
type HistoryResponse struct {
	History []models.AnalysisRecord `json:"history"`
}

// Analyze godoc
// @Summary      분석 요청
// @Description  지정한 모듈로 분석 요청을 라우팅하고 결과를 저장합니다.
// @Tags         API (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        module path string true "모듈 이름 (예: adversarial)"
// @Param        request body handler.AnalyzeRequest true "분석 요청 정보"
// @Success      200 {object} models.AnalysisResult
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      404 {object} handler.ErrorResponse "모듈 없음"
// @Failure      502 {object} handler.ErrorResponse "모듈 연결 불가"
// @Router       /api/analyze/{module} [post]
func Analyze(c *gin.Context) {
	username := c.GetString("username")
	moduleName := c.Param("module")

	mod, err := moduleRegistry.Get(moduleName)
	if err != nil {
		if errors.Is(err, registry.ErrModuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up module"})
		return
	}

	var body AnalyzeRequest
	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := json.Unmarshal(rawData, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(body.Target) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target cannot be empty"})
		return
	}

	req := models.AnalysisRequest{
		JobID:       uuid.New().String(),
		Target:      body.Target,
		ModelData:   body.ModelData,
		Params:      body.Params,
		RequestedBy: username,
	}

	eventHub.Broadcast(models.Event{
		Type:   models.EventAnalysisQueued,
		Module: moduleName,
		JobID:  req.JobID,
	})

	result, err := dispatcher.Dispatch(c.Request.Context(), mod, req)
	if err != nil {
		saveAnalysis(username, req, moduleName, models.AnalysisStatusFailed, nil)
		eventHub.Broadcast(models.Event{
			Type:   models.EventAnalysisFailed,
			Module: moduleName,
			JobID:  req.JobID,
			Data:   err.Error(),
		})

		if errors.Is(err, dispatch.ErrModuleUnreachable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Module is unreachable"})
			return
		}
		if errors.Is(err, dispatch.ErrModuleRejected) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[ERROR] Analyze: dispatch to %s failed: %v", moduleName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	saveAnalysis(username, req, moduleName, result.Status, result)
	eventHub.Broadcast(models.Event{
		Type:   models.EventAnalysisCompleted,
		Module: moduleName,
		JobID:  req.JobID,
		Data:   result.Summary,
	})

	c.JSON(http.StatusOK, result)
}

// 분석 결과를 이력 테이블에 저장, 실패해도 응답은 막지 않음
func saveAnalysis(username string, req models.AnalysisRequest, moduleName, status string, result *models.AnalysisResult) {
	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		log.Printf("[ERROR] saveAnalysis: failed to get user id: %v", err)
		return
	}

	resultJSON := ""
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			log.Printf("[ERROR] saveAnalysis: failed to marshal result: %v", err)
		} else {
			resultJSON = string(data)
		}
	}

	rec := models.AnalysisRecord{
		JobID:     req.JobID,
		Module:    moduleName,
		Target:    req.Target,
		Status:    status,
		Result:    resultJSON,
		CreatedAt: time.Now(),
	}
	if err := storage.CreateAnalysis(userID, rec); err != nil {
		log.Printf("[ERROR] saveAnalysis: failed to store record: %v", err)
	}
}

// GetHistory godoc
// @Summary      분석 이력 조회
// @Description  사용자의 과거 분석 요청 목록을 최신순으로 반환합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.HistoryResponse "history: [기록 배열]"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패 등 서버 오류"
// @Router       /api/history [get]
func GetHistory(c *gin.Context) {
	username := c.GetString("username")

	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	records, err := storage.GetAnalysesByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{History: records})
}

// GetHistoryDetail godoc
// @Summary      분석 이력 상세 조회
// @Description  저장된 결과 JSON을 포함한 단건 이력을 반환합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        job_id path string true "분석 작업 ID (UUID)"
// @Success      200 {object} models.AnalysisRecord
// @Failure      404 {object} handler.ErrorResponse "기록 없음"
// @Router       /api/history/{job_id} [get]
func GetHistoryDetail(c *gin.Context) {
	username := c.GetString("username")
	jobID := c.Param("job_id")

	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	record, err := storage.GetAnalysisByJobID(userID, jobID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch record"})
		return
	}
	c.JSON(http.StatusOK, record)
}
