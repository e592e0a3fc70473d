package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      헬스체크 (Health)
// @Description  코어 서비스 상태 확인
// @Tags         System
// @Produce      json
// @Success      200 {object} object{status=string}
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
