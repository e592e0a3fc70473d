package registry

import (
	"context"
	"log"
	"net/http"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

var healthClient = &http.Client{Timeout: 3 * time.Second}

// 상태 변화 알림 콜백 (nil 허용)
type StatusListener func(module, status string)

// 주기적으로 모듈 /health를 폴링하여 상태 갱신
// 모듈이 스스로 등록하는 방식이 아니라 설정된 목록만 확인함
func (r *Registry) RunHealthChecker(ctx context.Context, interval time.Duration, listener StatusListener) {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	// 시작 직후 1회 즉시 확인
	r.checkAll(listener)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("RunHealthChecker(): stopped")
			return
		case <-ticker.C:
			r.checkAll(listener)
		}
	}
}

func (r *Registry) checkAll(listener StatusListener) {
	for _, m := range r.List() {
		status := checkModule(m.BaseURL)
		if changed := r.setStatus(m.Name, status); changed {
			log.Printf("checkAll(): module %s status changed -> %s", m.Name, status)
			if listener != nil {
				listener(m.Name, status)
			}
		}
	}
}

func checkModule(baseURL string) string {
	resp, err := healthClient.Get(baseURL + "/health")
	if err != nil {
		return models.ModuleStatusUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ModuleStatusUnreachable
	}
	return models.ModuleStatusHealthy
}
