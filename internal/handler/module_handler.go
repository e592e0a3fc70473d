package handler

import (
	"errors"
	"net/http"

	"SAFE_AISafetySuite/internal/models"
	"SAFE_AISafetySuite/internal/registry"

	"github.com/gin-gonic/gin"
)

// 모듈 목록 응답 (Wrapper)
type ModuleListResponse struct {
	Modules []models.ModuleDescriptor `json:"modules"`
}

// ListModules godoc
// @Summary      모듈 목록 조회
// @Description  레지스트리에 등록된 분석 모듈과 현재 헬스 상태를 반환합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.ModuleListResponse
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Router       /api/modules [get]
func ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, ModuleListResponse{Modules: moduleRegistry.List()})
}

// GetModule godoc
// @Summary      모듈 단건 조회
// @Description  이름으로 모듈 디스크립터를 조회합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        name path string true "모듈 이름 (예: adversarial)"
// @Success      200 {object} models.ModuleDescriptor
// @Failure      404 {object} handler.ErrorResponse "모듈 없음"
// @Router       /api/modules/{name} [get]
func GetModule(c *gin.Context) {
	name := c.Param("name")

	mod, err := moduleRegistry.Get(name)
	if err != nil {
		if errors.Is(err, registry.ErrModuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up module"})
		return
	}
	c.JSON(http.StatusOK, mod)
}
