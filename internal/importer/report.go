// Package importer drives the mapping pipeline over a parsed CSV file:
// resolve the header once, fan rows out across a bounded worker pool, and
// aggregate per-row outcomes into a Report.
package importer

import (
	"sort"

	"github.com/harborpoint/creimport/internal/mapper"
)

// Report summarizes one import run. Workers build private Reports over their
// row ranges and the driver folds them together with Merge, so every field
// here must aggregate commutatively.
type Report struct {
	TotalRows     int            `json:"total_rows"`
	CleanRows     int            `json:"clean_rows"`
	RowsWithIssue int            `json:"rows_with_issues"`
	ErrorCounts   map[string]int `json:"error_counts,omitempty"`
}

// NewReport returns an empty report ready to absorb row outcomes.
func NewReport() *Report {
	return &Report{ErrorCounts: make(map[string]int)}
}

// AddRow folds one row outcome into the report.
func (r *Report) AddRow(res mapper.ImportRowResult) {
	r.TotalRows++
	if len(res.Errors) == 0 {
		r.CleanRows++
		return
	}
	r.RowsWithIssue++
	for _, e := range res.Errors {
		r.ErrorCounts[e]++
	}
}

// Merge folds other into r. Merge is commutative and associative, so partial
// reports from parallel workers combine to the same totals in any order.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.TotalRows += other.TotalRows
	r.CleanRows += other.CleanRows
	r.RowsWithIssue += other.RowsWithIssue
	for msg, n := range other.ErrorCounts {
		r.ErrorCounts[msg] += n
	}
}

// TopErrors returns the most frequent diagnostics, highest count first, ties
// broken alphabetically so the output is stable.
func (r *Report) TopErrors(limit int) []ErrorCount {
	out := make([]ErrorCount, 0, len(r.ErrorCounts))
	for msg, n := range r.ErrorCounts {
		out = append(out, ErrorCount{Message: msg, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Message < out[j].Message
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ErrorCount pairs a diagnostic message with how many rows produced it.
type ErrorCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// MappingSummary describes how a header resolved, for preview responses and
// logs. Unmapped columns carry a nearest-alias suggestion when one is close
// enough to be worth showing.
type MappingSummary struct {
	DetectedSource  string            `json:"detected_source"`
	PropertyCols    int               `json:"property_columns"`
	TransactionCols int               `json:"transaction_columns"`
	Unmapped        []UnmappedColumn  `json:"unmapped_columns,omitempty"`
	Warnings        []string          `json:"warnings,omitempty"`
	Fields          map[string]string `json:"fields"`
}

// UnmappedColumn is a header column no alias table recognized.
type UnmappedColumn struct {
	Column     string `json:"column"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SummarizeMapping builds a MappingSummary from a resolution result.
func SummarizeMapping(res mapper.AutoMapResult) MappingSummary {
	summary := MappingSummary{
		DetectedSource:  string(res.DetectedSource),
		PropertyCols:    len(res.PropertyMapping),
		TransactionCols: len(res.TransactionMapping),
		Warnings:        res.Warnings,
		Fields:          make(map[string]string, len(res.PropertyMapping)+len(res.TransactionMapping)),
	}
	for col, field := range res.PropertyMapping {
		summary.Fields[col] = string(field)
	}
	for col, field := range res.TransactionMapping {
		summary.Fields[col] = string(field)
	}
	for _, col := range res.UnmappedColumns {
		summary.Unmapped = append(summary.Unmapped, UnmappedColumn{
			Column:     col,
			Suggestion: SuggestAlias(col),
		})
	}
	return summary
}
