package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportBatch is one upload's bookkeeping row. Batches tie inserted
// properties and transactions back to the file they came from.
type ImportBatch struct {
	ID            uuid.UUID
	FileName      string
	Source        string
	Status        string
	TotalRows     int
	CleanRows     int
	RowsWithIssue int
	CreatedAt     time.Time
	FinishedAt    *time.Time
}

// Batch statuses.
const (
	BatchStatusRunning  = "running"
	BatchStatusComplete = "complete"
	BatchStatusFailed   = "failed"
)

// CreateImportBatch records the start of an import and returns its ID.
func (s *Store) CreateImportBatch(ctx context.Context, fileName, source string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.Exec(ctx, `
		INSERT INTO import_batches (id, file_name, source, status, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, fileName, source, BatchStatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create import batch: %w", err)
	}
	return id, nil
}

// FinishImportBatch marks a batch complete and stores its row counts.
func (s *Store) FinishImportBatch(ctx context.Context, id uuid.UUID, totalRows, cleanRows, rowsWithIssue int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE import_batches
		SET status = $2, total_rows = $3, clean_rows = $4, rows_with_issues = $5, finished_at = now()
		WHERE id = $1`,
		id, BatchStatusComplete, totalRows, cleanRows, rowsWithIssue,
	)
	if err != nil {
		return fmt.Errorf("finish import batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish import batch: batch %s not found", id)
	}
	return nil
}

// FailImportBatch marks a batch failed with a reason.
func (s *Store) FailImportBatch(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE import_batches
		SET status = $2, failure_reason = $3, finished_at = now()
		WHERE id = $1`,
		id, BatchStatusFailed, reason,
	)
	if err != nil {
		return fmt.Errorf("fail import batch: %w", err)
	}
	return nil
}

// GetImportBatch returns one batch by ID.
func (s *Store) GetImportBatch(ctx context.Context, id uuid.UUID) (*ImportBatch, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, file_name, source, status, total_rows, clean_rows, rows_with_issues, created_at, finished_at
		FROM import_batches
		WHERE id = $1`,
		id,
	)

	var b ImportBatch
	if err := row.Scan(&b.ID, &b.FileName, &b.Source, &b.Status, &b.TotalRows, &b.CleanRows, &b.RowsWithIssue, &b.CreatedAt, &b.FinishedAt); err != nil {
		return nil, fmt.Errorf("get import batch: %w", err)
	}
	return &b, nil
}

// ListImportBatches returns recent batches, newest first.
func (s *Store) ListImportBatches(ctx context.Context, limit int) ([]ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, file_name, source, status, total_rows, clean_rows, rows_with_issues, created_at, finished_at
		FROM import_batches
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list import batches: %w", err)
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var b ImportBatch
		if err := rows.Scan(&b.ID, &b.FileName, &b.Source, &b.Status, &b.TotalRows, &b.CleanRows, &b.RowsWithIssue, &b.CreatedAt, &b.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan import batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list import batches: %w", err)
	}
	return batches, nil
}
