/**
* Name: 			registry.go
* Description: 		모듈 레지스트리 (정적 YAML 설정 기반 모듈 디스커버리)
* Workflow: 		설정 파일 로드 -> 디스크립터 보관 -> 헬스체커가 상태 갱신
 */
package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"SAFE_AISafetySuite/internal/models"

	"gopkg.in/yaml.v3"
)

var ErrModuleNotFound = errors.New("module not found in registry")

// 레지스트리 YAML 파일 구조
type registryFile struct {
	Modules []models.ModuleDescriptor `yaml:"modules"`
}

type Registry struct {
	mu      sync.RWMutex
	modules map[string]*models.ModuleDescriptor
}

// YAML 설정 파일에서 레지스트리 생성
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry.Load(): failed to read config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("registry.Load(): failed to parse config: %w", err)
	}
	if len(file.Modules) == 0 {
		return nil, errors.New("registry.Load(): no modules defined in config")
	}

	r := &Registry{modules: make(map[string]*models.ModuleDescriptor)}
	for i := range file.Modules {
		m := file.Modules[i]
		if m.Name == "" || m.BaseURL == "" {
			return nil, fmt.Errorf("registry.Load(): module entry %d is missing name or base_url", i)
		}
		if _, dup := r.modules[m.Name]; dup {
			return nil, fmt.Errorf("registry.Load(): duplicate module name: %s", m.Name)
		}
		m.Status = models.ModuleStatusUnknown
		r.modules[m.Name] = &m
	}
	return r, nil
}

// 이름으로 모듈 조회 (복사본 반환)
func (r *Registry) Get(name string) (models.ModuleDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.modules[name]
	if !exists {
		return models.ModuleDescriptor{}, ErrModuleNotFound
	}
	return *m, nil
}

// 전체 모듈 목록, 이름순 정렬
func (r *Registry) List() []models.ModuleDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.ModuleDescriptor, 0, len(r.modules))
	for _, m := range r.modules {
		list = append(list, *m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// 헬스체커가 호출하는 상태 갱신
func (r *Registry) setStatus(name, status string) (changed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.modules[name]
	if !exists {
		return false
	}
	changed = m.Status != status
	m.Status = status
	m.LastChecked = time.Now()
	return changed
}
