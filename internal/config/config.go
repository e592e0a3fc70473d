package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// 코어 서비스 설정, .env + 환경변수 기반
// DB 경로는 storage 패키지가 SAFE_DB_PATH를 직접 읽음
type CoreConfig struct {
	ListenAddr          string
	RegistryPath        string
	DispatchTimeout     time.Duration
	HealthCheckInterval time.Duration
}

func LoadCore() *CoreConfig {
	// .env는 없어도 됨 (컨테이너에서는 환경변수로 주입)
	if err := godotenv.Load(); err != nil {
		log.Println("LoadCore(): no .env file found, using environment variables only")
	}

	cfg := &CoreConfig{
		ListenAddr:          getEnv("CORE_LISTEN_ADDR", ":8000"),
		RegistryPath:        getEnv("MODULE_REGISTRY_PATH", "configs/modules.yaml"),
		DispatchTimeout:     getEnvSeconds("DISPATCH_TIMEOUT_SEC", 30),
		HealthCheckInterval: getEnvSeconds("HEALTH_CHECK_INTERVAL_SEC", 15),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] getEnvSeconds(): invalid value for %s: %q, using default", key, v)
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}
