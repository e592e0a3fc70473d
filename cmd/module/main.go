package main

import (
	"flag"

	"SAFE_AISafetySuite/internal/config"
	"SAFE_AISafetySuite/internal/logging"
	"SAFE_AISafetySuite/internal/modserver"
	"SAFE_AISafetySuite/internal/modules"

	"github.com/sirupsen/logrus"
)

// 하나의 바이너리로 어떤 분석 모듈이든 실행
// 예: SAFE_MODULE_NAME=adversarial ./module -listen 0.0.0.0:8001
func main() {
	configFile := flag.String("config", "", "Path to the module config file")
	flag.Parse()

	cfg, err := config.LoadModule(*configFile)
	if err != nil {
		logging.GetLogger().Fatalf("Failed to load module config: %v", err)
	}

	if cfg.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logrus.InfoLevel)
	}
	log := logging.GetLogger()

	analyzer, exists := modules.Get(cfg.ModuleName)
	if !exists {
		log.Fatalf("Unknown module name: %s (available: %v)", cfg.ModuleName, modules.Names())
	}

	server := modserver.New(analyzer)
	if err := server.Run(cfg.ListenAddress); err != nil {
		log.Fatalf("Module server failed to start: %v", err)
	}
}
