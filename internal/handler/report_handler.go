package handler

import (
	"database/sql"
	"fmt"
	"net/http"

	"SAFE_AISafetySuite/internal/archiver"
	"SAFE_AISafetySuite/internal/storage"

	"github.com/gin-gonic/gin"
)

// ExportReport godoc
// @Summary      분석 리포트 다운로드
// @Description  저장된 분석 결과를 zip 아카이브(결과 JSON + 요약 텍스트)로 내려받습니다.
// @Tags         API (Protected)
// @Produce      application/zip
// @Security     BearerAuth
// @Param        job_id path string true "분석 작업 ID (UUID)"
// @Success      200 {file} file "zip 아카이브"
// @Failure      404 {object} handler.ErrorResponse "기록 없음"
// @Failure      500 {object} handler.ErrorResponse "아카이브 생성 실패"
// @Router       /api/report/{job_id} [get]
func ExportReport(c *gin.Context) {
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

	data, err := archiver.BuildReport(record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=safe_report_%s.zip", jobID))
	c.Data(http.StatusOK, "application/zip", data)
}
