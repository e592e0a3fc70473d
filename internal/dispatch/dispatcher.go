/**
* Name: 			dispatcher.go
* Description: 		코어 -> 모듈 분석 요청 라우팅
* Workflow: 		모듈 /analyze 호출 -> 결과 디코딩, 전송 오류 시 1회 재시도
 */
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"SAFE_AISafetySuite/internal/models"

	"github.com/sirupsen/logrus"
)

// 모듈이 응답은 했지만 분석 실패를 보고한 경우
var ErrModuleRejected = errors.New("module rejected the analysis request")

// 모듈에 연결할 수 없는 경우 (502로 매핑)
var ErrModuleUnreachable = errors.New("module is unreachable")

type Dispatcher struct {
	client *http.Client
	log    *logrus.Logger
}

func NewDispatcher(timeout time.Duration, log *logrus.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
		log: log,
	}
}

// 분석 요청을 대상 모듈로 전달
func (d *Dispatcher) Dispatch(ctx context.Context, mod models.ModuleDescriptor, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("Dispatch(): failed to marshal request: %w", err)
	}

	resp, err := d.post(ctx, mod.BaseURL+"/analyze", body)
	if err != nil {
		// 전송 계층 오류는 1회 재시도
		d.log.WithFields(logrus.Fields{
			"module": mod.Name,
			"job_id": req.JobID,
		}).Warnf("Dispatch(): transport error, retrying once: %v", err)

		resp, err = d.post(ctx, mod.BaseURL+"/analyze", body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrModuleUnreachable, mod.Name, err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var moduleErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&moduleErr)
		if moduleErr.Error == "" {
			moduleErr.Error = resp.Status
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrModuleRejected, mod.Name, moduleErr.Error)
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("Dispatch(): failed to decode result from %s: %w", mod.Name, err)
	}

	d.log.WithFields(logrus.Fields{
		"module": mod.Name,
		"job_id": req.JobID,
		"status": result.Status,
	}).Infoln("Dispatch(): analysis finished")

	return &result, nil
}

func (d *Dispatcher) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return d.client.Do(httpReq)
}
