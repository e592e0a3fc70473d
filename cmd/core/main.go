// @title           SAFE Core API
// @version         0.1.0
// @description     AI 안전성 분석 모듈 오케스트레이션 코어 서비스
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"

	"SAFE_AISafetySuite/internal/config"
	"SAFE_AISafetySuite/internal/dispatch"
	"SAFE_AISafetySuite/internal/handler"
	"SAFE_AISafetySuite/internal/logging"
	"SAFE_AISafetySuite/internal/middleware"
	"SAFE_AISafetySuite/internal/models"
	"SAFE_AISafetySuite/internal/registry"
	"SAFE_AISafetySuite/internal/storage"
	"SAFE_AISafetySuite/internal/ws"

	_ "SAFE_AISafetySuite/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg := config.LoadCore()

	storage.InitDB()

	// 모듈 레지스트리 로드 (정적 YAML, 동적 등록 없음)
	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("[Fatal] Failed to load module registry: %v", err)
	}

	dispatcher := dispatch.NewDispatcher(cfg.DispatchTimeout, logging.GetLogger())

	// 이벤트 허브 기동
	eventHub := ws.NewHub()
	go eventHub.Run()

	// 모듈 헬스체커 기동, 상태 변화는 웹 UI로 브로드캐스트
	go reg.RunHealthChecker(context.Background(), cfg.HealthCheckInterval, func(module, status string) {
		eventHub.Broadcast(models.Event{
			Type:   models.EventModuleStatus,
			Module: module,
			Data:   status,
		})
	})

	handler.Init(reg, dispatcher, eventHub)

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Invite-Code")
	router.Use(cors.New(corsConfig))

	router.GET("/health", handler.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/signup", middleware.LoginRateLimiter(), middleware.InviteCodeMiddleware(), handler.Signup)
	router.POST("/login", middleware.LoginRateLimiter(), handler.Login)

	protected := router.Group("/api").Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", handler.Profile)
		protected.GET("/modules", handler.ListModules)
		protected.GET("/modules/:name", handler.GetModule)
		protected.POST("/analyze/:module", middleware.AnalyzeRateLimiter(), handler.Analyze)
		protected.GET("/history", handler.GetHistory)
		protected.GET("/history/:job_id", handler.GetHistoryDetail)
		protected.GET("/report/:job_id", handler.ExportReport)
	}

	router.GET("/ws/events", handler.HandleEvents)
	router.GET("/ws/simulation", handler.HandleSimulation)

	log.Fatal(router.Run(cfg.ListenAddr))
}
