package storage

import (
	"fmt"
	"time"

	"SAFE_AISafetySuite/internal/models"
)

func CreateAnalysis(userID int, rec models.AnalysisRecord) error {
	stmt, err := db.Prepare("INSERT INTO analyses(job_id, user_id, module, target, status, result, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	// RFC3339 문자열로 직접 바인딩, 드라이버별 시간 포맷 차이를 피함
	_, err = stmt.Exec(rec.JobID, userID, rec.Module, rec.Target, rec.Status, rec.Result, createdAt.UTC().Format(time.RFC3339Nano))
	return err
}

func GetAnalysesByUserID(userID int) ([]models.AnalysisRecord, error) {
	query := `
		SELECT id, job_id, module, target, status, created_at
		FROM analyses
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		var createdStr string // SQLite는 시간을 문자열로 저장함

		if err := rows.Scan(&r.ID, &r.JobID, &r.Module, &r.Target, &r.Status, &createdStr); err != nil {
			return nil, err
		}

		parsedTime, err := time.Parse(time.RFC3339Nano, createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdStr, err)
		}
		r.CreatedAt = parsedTime

		records = append(records, r)
	}
	return records, rows.Err()
}

// 이력 상세 조회, 저장된 결과 JSON 원문 포함
func GetAnalysisByJobID(userID int, jobID string) (models.AnalysisRecord, error) {
	var r models.AnalysisRecord
	var createdStr string

	row := db.QueryRow(`
		SELECT id, job_id, module, target, status, result, created_at
		FROM analyses
		WHERE user_id = ? AND job_id = ?
	`, userID, jobID)

	if err := row.Scan(&r.ID, &r.JobID, &r.Module, &r.Target, &r.Status, &r.Result, &createdStr); err != nil {
		return r, err
	}

	parsedTime, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return r, fmt.Errorf("failed to parse created_at %q: %w", createdStr, err)
	}
	r.CreatedAt = parsedTime
	return r, nil
}
