package importer

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/harborpoint/creimport/internal/csvio"
	"github.com/harborpoint/creimport/internal/mapper"
)

// Options tunes a batch run.
type Options struct {
	// Workers bounds the row-processing pool. Zero means GOMAXPROCS.
	Workers int
	// ChunkSize is how many rows each worker claims at a time. Zero means
	// a default sized to keep scheduling overhead low on wide files.
	ChunkSize int
}

const defaultChunkSize = 256

// Result is the outcome of a batch run: the header resolution, every row's
// transformed output in input order, and the aggregate report.
type Result struct {
	Mapping mapper.AutoMapResult
	Rows    []mapper.ImportRowResult
	Report  *Report
}

// Run resolves headers against the given source and transforms every row.
// Rows are independent, so they fan out across a bounded worker pool; output
// order still matches input order. Row-level problems land in the report,
// never in the returned error, which is non-nil only on context cancellation.
func Run(ctx context.Context, headers []string, rows [][]string, source mapper.SourceKind, opts Options) (*Result, error) {
	mapping := mapper.Resolve(headers, source)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}

	out := make([]mapper.ImportRowResult, len(rows))
	report := NewReport()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(rows); start += chunk {
		end := start + chunk
		if end > len(rows) {
			end = len(rows)
		}
		start, end := start, end
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local := NewReport()
			for i := start; i < end; i++ {
				bag := RowBag(headers, rows[i])
				out[i] = mapper.TransformRow(bag, mapping.PropertyMapping, mapping.TransactionMapping)
				local.AddRow(out[i])
			}
			mu.Lock()
			report.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Mapping: mapping, Rows: out, Report: report}, nil
}

// RowBag converts one CSV record into the cell bag TransformRow consumes.
// Cells are cleaned of export artifacts; empty cells become null. Records
// shorter than the header leave their columns absent, records longer drop
// the overflow.
func RowBag(headers []string, record []string) map[string]mapper.Value {
	bag := make(map[string]mapper.Value, len(headers))
	for i, h := range headers {
		if i >= len(record) {
			break
		}
		cell := csvio.CleanCell(record[i])
		if cell == "" {
			bag[h] = mapper.Null()
			continue
		}
		bag[h] = mapper.Text(cell)
	}
	return bag
}
