package database

import (
	"github.com/username/docbridge/backend/src/logger"
)

// ExportRecord is one row of the export audit trail. Converted documents are
// never stored, only the attempt and its outcome.
type ExportRecord struct {
	ID           int64  `json:"id"`
	QueueID      int    `json:"queue_id"`
	AnnotationID int    `json:"annotation_id"`
	Success      bool   `json:"success"`
	ErrorKind    string `json:"error_kind,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// RecordExport stores one export attempt. Best effort: a history write
// failure is logged and never fails the export itself.
func RecordExport(queueID, annotationID int, success bool, errorKind string) {
	if DB == nil {
		return
	}
	_, err := DB.Exec(
		`INSERT INTO export_history (queue_id, annotation_id, success, error_kind) VALUES (?, ?, ?, ?)`,
		queueID, annotationID, success, errorKind,
	)
	if err != nil && logger.L != nil {
		logger.L.Error("Failed to record export history", "queueID", queueID, "annotationID", annotationID, "error", err)
	}
}

// ListExports returns the most recent export attempts, newest first.
func ListExports(limit int) ([]ExportRecord, error) {
	if DB == nil {
		return []ExportRecord{}, nil
	}
	rows, err := DB.Query(
		`SELECT id, queue_id, annotation_id, success, COALESCE(error_kind, ''), created_at
		 FROM export_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []ExportRecord{}
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.QueueID, &rec.AnnotationID, &rec.Success, &rec.ErrorKind, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
