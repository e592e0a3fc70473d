/**
* Name: 			server.go
* Description: 		분석 모듈 공통 HTTP 서버
* Workflow: 		/health, /info, /analyze 제공, 어떤 Analyzer든 서빙 가능
 */
package modserver

import (
	"errors"
	"net/http"
	"time"

	"SAFE_AISafetySuite/internal/logging"
	"SAFE_AISafetySuite/internal/models"
	"SAFE_AISafetySuite/internal/modules"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Server struct {
	analyzer modules.Analyzer
	engine   *gin.Engine
}

func New(analyzer modules.Analyzer) *Server {
	engine := gin.Default()
	s := &Server{analyzer: analyzer, engine: engine}

	engine.GET("/health", s.handleHealth)
	engine.GET("/info", s.handleInfo)
	engine.POST("/analyze", s.handleAnalyze)
	return s
}

// 테스트에서 httptest로 직접 붙일 수 있게 엔진 노출
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(addr string) error {
	logging.GetLogger().Infof("module %s listening on %s", s.analyzer.Name(), addr)
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "module": s.analyzer.Name()})
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.analyzer.Describe())
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.JobID == "" {
		req.JobID = uuid.New().String()
	}

	started := time.Now()
	ctx := c.Request.Context()
	result, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		if errors.Is(err, modules.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logging.GetLogger().Errorf("handleAnalyze(): analyzer %s failed: %v", s.analyzer.Name(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	logging.GetLogger().Infof("handleAnalyze(): %s finished job %s in %s", s.analyzer.Name(), req.JobID, time.Since(started))
	c.JSON(http.StatusOK, result)
}
