/**
* Name: 			archiver.go
* Description: 		분석 결과 리포트 zip 아카이브 생성
* Workflow: 		결과 JSON + 요약 텍스트 -> zip 버퍼
 */
package archiver

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"SAFE_AISafetySuite/internal/models"
)

// 이력 레코드를 다운로드 가능한 zip 리포트로 변환
func BuildReport(rec models.AnalysisRecord) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	// 1. 결과 JSON 원문 (저장된 그대로)
	resultFile, err := zw.Create(fmt.Sprintf("%s_result.json", rec.JobID))
	if err != nil {
		return nil, fmt.Errorf("BuildReport(): failed to create result entry: %w", err)
	}
	resultBody := rec.Result
	if resultBody == "" {
		resultBody = "{}"
	}
	if _, err := resultFile.Write([]byte(resultBody)); err != nil {
		return nil, err
	}

	// 2. 사람이 읽는 요약 텍스트
	summaryFile, err := zw.Create("summary.txt")
	if err != nil {
		return nil, fmt.Errorf("BuildReport(): failed to create summary entry: %w", err)
	}
	if _, err := summaryFile.Write([]byte(buildSummary(rec))); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("BuildReport(): failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func buildSummary(rec models.AnalysisRecord) string {
	var b strings.Builder
	b.WriteString("SAFE analysis report\n")
	b.WriteString("====================\n")
	fmt.Fprintf(&b, "Job ID:     %s\n", rec.JobID)
	fmt.Fprintf(&b, "Module:     %s\n", rec.Module)
	fmt.Fprintf(&b, "Target:     %s\n", rec.Target)
	fmt.Fprintf(&b, "Status:     %s\n", rec.Status)
	fmt.Fprintf(&b, "Created at: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))

	// 저장된 결과에서 발견 사항 요약
	if rec.Result != "" {
		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(rec.Result), &result); err == nil {
			fmt.Fprintf(&b, "\nSummary: %s\n", result.Summary)
			fmt.Fprintf(&b, "Findings (%d):\n", len(result.Findings))
			for i, f := range result.Findings {
				fmt.Fprintf(&b, "  %d. [%s] %s: %s\n", i+1, f.Severity, f.Type, f.Description)
			}
		}
	}
	return b.String()
}
