package registry

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"SAFE_AISafetySuite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRegistryFile(t, `
modules:
  - name: adversarial
    display_name: Adversarial Attack Simulation
    base_url: http://localhost:8001
    capabilities: [simulate_attack]
  - name: bias
    display_name: Bias Detection
    base_url: http://localhost:8002
`)

	reg, err := Load(path)
	require.NoError(t, err)

	list := reg.List()
	require.Len(t, list, 2)
	// 이름순 정렬 확인
	assert.Equal(t, "adversarial", list[0].Name)
	assert.Equal(t, "bias", list[1].Name)
	assert.Equal(t, models.ModuleStatusUnknown, list[0].Status)

	mod, err := reg.Get("bias")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8002", mod.BaseURL)

	_, err = reg.Get("nope")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "modules: []"},
		{"missing base_url", "modules:\n  - name: adversarial"},
		{"duplicate name", "modules:\n  - name: a\n    base_url: http://x\n  - name: a\n    base_url: http://y"},
		{"not yaml", "::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeRegistryFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestHealthCheckUpdatesStatus(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	path := writeRegistryFile(t, `
modules:
  - name: up
    base_url: `+healthy.URL+`
  - name: down
    base_url: http://127.0.0.1:1
`)
	reg, err := Load(path)
	require.NoError(t, err)

	var notified []string
	reg.checkAll(func(module, status string) {
		notified = append(notified, module+"="+status)
	})

	up, _ := reg.Get("up")
	down, _ := reg.Get("down")
	assert.Equal(t, models.ModuleStatusHealthy, up.Status)
	assert.Equal(t, models.ModuleStatusUnreachable, down.Status)
	assert.False(t, up.LastChecked.IsZero())

	// unknown -> healthy/unreachable 전환이 리스너로 통지됨
	assert.ElementsMatch(t, []string{"up=healthy", "down=unreachable"}, notified)

	// 상태가 그대로면 재통지 없음
	notified = nil
	reg.checkAll(func(module, status string) {
		notified = append(notified, module)
	})
	assert.Empty(t, notified)
}
