package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborpoint/creimport/internal/csvio"
	"github.com/harborpoint/creimport/internal/database"
	"github.com/harborpoint/creimport/internal/importer"
	"github.com/harborpoint/creimport/internal/logging"
	"github.com/harborpoint/creimport/internal/mapper"
)

// handleHealth reports liveness and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		respondError(w, r, fmt.Errorf("database ping: %w", err), http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListSources returns the recognized data sources.
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	sources := mapper.Sources()
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = string(src)
	}
	respondJSON(w, http.StatusOK, map[string][]string{"sources": names})
}

// importResponse is the body returned by POST /api/imports.
type importResponse struct {
	BatchID      string                  `json:"batch_id"`
	Source       string                  `json:"source"`
	Report       *importer.Report        `json:"report"`
	TopErrors    []importer.ErrorCount   `json:"top_errors,omitempty"`
	Mapping      importer.MappingSummary `json:"mapping"`
	Properties   int64                   `json:"properties_inserted"`
	Transactions int64                   `json:"transactions_inserted"`
}

// handleImport accepts a multipart CSV upload, runs the full pipeline, and
// persists the result in one transaction.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	fileName, headers, rows, size, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	source, err := requestedSource(r, headers)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	logger := logging.WithFields(ctx, "file", fileName, "source", string(source), "rows", len(rows), "bytes", size)
	logger.Info("import started")

	result, err := importer.Run(ctx, headers, rows, source, importer.Options{Workers: s.cfg.Import.Workers})
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	// The batch row is created outside the data transaction so a failed
	// import still leaves a failed batch behind, with the reason recorded.
	batchID, err := database.New(s.pool).CreateImportBatch(ctx, fileName, string(source))
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	var (
		propCount int64
		txCount   int64
	)
	err = database.InTx(ctx, s.pool, func(store *database.Store) error {
		batchSize := s.cfg.Import.BatchSize
		for start := 0; start < len(result.Rows); start += batchSize {
			end := start + batchSize
			if end > len(result.Rows) {
				end = len(result.Rows)
			}

			propRows := make([]database.PropertyRow, end-start)
			for i, row := range result.Rows[start:end] {
				propRows[i] = database.PropertyRow{BatchID: batchID, Fields: row.Property}
			}
			propertyIDs, err := store.BulkInsertProperties(ctx, propRows)
			if err != nil {
				return err
			}
			propCount += int64(len(propertyIDs))

			var txRows []database.TransactionRow
			for i, row := range result.Rows[start:end] {
				if database.HasValues(row.Transaction) {
					txRows = append(txRows, database.TransactionRow{
						PropertyID: propertyIDs[i],
						BatchID:    batchID,
						Fields:     row.Transaction,
					})
				}
			}
			inserted, err := store.BulkInsertTransactions(ctx, txRows)
			if err != nil {
				return err
			}
			txCount += inserted
		}

		rep := result.Report
		return store.FinishImportBatch(ctx, batchID, rep.TotalRows, rep.CleanRows, rep.RowsWithIssue)
	})
	if err != nil {
		// Record the failure even when the import context is already dead.
		failCtx := context.WithoutCancel(ctx)
		if failErr := database.New(s.pool).FailImportBatch(failCtx, batchID, err.Error()); failErr != nil {
			logger.Error("recording batch failure", "batch_id", batchID.String(), "error", failErr)
		}
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	logger.Info("import completed",
		"batch_id", batchID.String(),
		"properties", propCount,
		"transactions", txCount,
		"rows_with_issues", result.Report.RowsWithIssue,
	)

	respondJSON(w, http.StatusCreated, importResponse{
		BatchID:      batchID.String(),
		Source:       string(source),
		Report:       result.Report,
		TopErrors:    result.Report.TopErrors(10),
		Mapping:      importer.SummarizeMapping(result.Mapping),
		Properties:   propCount,
		Transactions: txCount,
	})
}

// previewResponse is the body returned by POST /api/imports/preview.
type previewResponse struct {
	Source  string                  `json:"source"`
	Mapping importer.MappingSummary `json:"mapping"`
	Report  *importer.Report        `json:"report"`
	Rows    []previewRow            `json:"rows"`
}

type previewRow struct {
	Property    map[string]any `json:"property"`
	Transaction map[string]any `json:"transaction,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
}

// handlePreview transforms the first rows of an upload without persisting,
// so clients can inspect the mapping before committing to an import.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, headers, rows, _, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	source, err := requestedSource(r, headers)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if len(rows) > s.cfg.Import.PreviewRows {
		rows = rows[:s.cfg.Import.PreviewRows]
	}

	result, err := importer.Run(r.Context(), headers, rows, source, importer.Options{Workers: 1})
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	preview := make([]previewRow, len(result.Rows))
	for i, row := range result.Rows {
		preview[i] = previewRow{
			Property:    bagJSON(row.Property),
			Transaction: bagJSON(row.Transaction),
			Errors:      row.Errors,
		}
	}

	respondJSON(w, http.StatusOK, previewResponse{
		Source:  string(source),
		Mapping: importer.SummarizeMapping(result.Mapping),
		Report:  result.Report,
		Rows:    preview,
	})
}

// batchResponse is the JSON shape of one import batch. The insert counts are
// only populated on the single-batch endpoint; the list omits them.
type batchResponse struct {
	ID            string     `json:"id"`
	FileName      string     `json:"file_name"`
	Source        string     `json:"source"`
	Status        string     `json:"status"`
	TotalRows     int        `json:"total_rows"`
	CleanRows     int        `json:"clean_rows"`
	RowsWithIssue int        `json:"rows_with_issues"`
	CreatedAt     time.Time  `json:"created_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	Properties    *int64     `json:"properties,omitempty"`
	Transactions  *int64     `json:"transactions,omitempty"`
}

func toBatchResponse(b database.ImportBatch) batchResponse {
	return batchResponse{
		ID:            b.ID.String(),
		FileName:      b.FileName,
		Source:        b.Source,
		Status:        b.Status,
		TotalRows:     b.TotalRows,
		CleanRows:     b.CleanRows,
		RowsWithIssue: b.RowsWithIssue,
		CreatedAt:     b.CreatedAt,
		FinishedAt:    b.FinishedAt,
	}
}

// handleListImports returns recent import batches.
func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	batches, err := database.New(s.pool).ListImportBatches(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	out := make([]batchResponse, len(batches))
	for i, b := range batches {
		out[i] = toBatchResponse(b)
	}
	respondJSON(w, http.StatusOK, map[string]any{"imports": out})
}

// handleGetImport returns one import batch by ID, with its insert counts.
func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		respondError(w, r, fmt.Errorf("invalid batch ID: %w", err), http.StatusBadRequest)
		return
	}

	store := database.New(s.pool)
	batch, err := store.GetImportBatch(r.Context(), id)
	if err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return
	}

	props, err := store.CountPropertiesByBatch(r.Context(), id)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	txs, err := store.CountTransactionsByBatch(r.Context(), id)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	resp := toBatchResponse(*batch)
	resp.Properties = &props
	resp.Transactions = &txs
	respondJSON(w, http.StatusOK, resp)
}

// readUpload parses the multipart form, enforces the size limit, and reads
// the CSV into a header row and data rows. The returned size is the number
// of file bytes consumed, for log lines sizing the upload.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []string, [][]string, int64, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, nil, 0, fmt.Errorf("file too large: limit is %d bytes", maxErr.Limit)
		}
		return "", nil, nil, 0, fmt.Errorf("no file provided: %w", err)
	}
	defer file.Close()

	counter := csvio.NewCountingReader(file)
	cr := csvio.NewReader(counter)

	headers, err := cr.Read()
	if err == io.EOF {
		return "", nil, nil, 0, errors.New("empty file")
	}
	if err != nil {
		return "", nil, nil, 0, fmt.Errorf("invalid csv header: %w", err)
	}
	for i, h := range headers {
		headers[i] = csvio.CleanCell(h)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, nil, 0, fmt.Errorf("invalid csv at row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return "", nil, nil, 0, errors.New("empty file: no data rows after header")
	}

	return header.Filename, headers, rows, counter.BytesRead, nil
}

// requestedSource resolves the source for a request: an explicit form value
// must name a recognized source; otherwise the header is fingerprinted.
func requestedSource(r *http.Request, headers []string) (mapper.SourceKind, error) {
	requested := r.FormValue("source")
	if requested == "" {
		return mapper.DetectSource(headers), nil
	}
	for _, src := range mapper.Sources() {
		if string(src) == requested {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", requested)
}

// bagJSON renders a canonical field bag as a JSON-friendly map.
func bagJSON(fields map[mapper.CanonicalField]mapper.Value) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for field, v := range fields {
		switch v.Kind {
		case mapper.KindText:
			out[string(field)] = v.Text
		case mapper.KindNumber:
			out[string(field)] = v.Number
		case mapper.KindBool:
			out[string(field)] = v.Bool
		default:
			out[string(field)] = nil
		}
	}
	return out
}
