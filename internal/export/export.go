package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
)

// Output file names.
const (
	SalesTrendFile   = "sales_trend.png"
	RevenueHistFile  = "revenue_distribution.png"
	WorkbookFile     = "operations_kpis.xlsx"
	defaultHistogram = analytics.DefaultHistogramBins
)

// File is one written export artifact.
type File struct {
	Name string
	Path string
	Size int64
}

// Result describes a completed export run.
type Result struct {
	ID       uuid.UUID
	Dir      string
	Files    []File
	Started  time.Time
	Duration time.Duration
}

// TotalSize returns the combined size of all written files.
func (r *Result) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}

// Summary returns a one-line description such as "3 files (48 kB) in exports".
func (r *Result) Summary() string {
	return fmt.Sprintf("%d files (%s) in %s",
		len(r.Files), humanize.Bytes(uint64(r.TotalSize())), r.Dir)
}

// Names lists the written file names.
func (r *Result) Names() string {
	names := make([]string, len(r.Files))
	for i, f := range r.Files {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

// Exporter writes the charts and workbook for a dataset.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Run writes every artifact into dir concurrently. The first failure cancels
// the remaining writers and is returned.
func (e *Exporter) Run(ctx context.Context, dir string, data Data) (*Result, error) {
	if data.Snapshot == nil {
		return nil, fmt.Errorf("no snapshot to export")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	result := &Result{
		ID:      uuid.New(),
		Dir:     dir,
		Started: time.Now(),
	}

	hist := data.Snapshot.Revenue
	if len(hist.Bins) == 0 && len(data.Snapshot.Records) > 0 {
		hist = analytics.RevenueHistogram(analytics.RevenueValues(data.Snapshot.Records), defaultHistogram)
	}

	writers := []struct {
		name  string
		write func(path string) error
	}{
		{SalesTrendFile, func(path string) error { return WriteSalesTrendPNG(path, data.Snapshot.Trend) }},
		{RevenueHistFile, func(path string) error { return WriteRevenueHistogramPNG(path, hist) }},
		{WorkbookFile, func(path string) error { return WriteWorkbook(path, data) }},
	}

	files := make([]File, len(writers))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, w := range writers {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir, w.name)
			if err := w.write(path); err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			files[i] = File{Name: w.name, Path: path, Size: info.Size()}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Error("export failed", "id", result.ID, "dir", dir, "error", err)
		return nil, err
	}

	sort.Slice(files, func(a, b int) bool { return files[a].Name < files[b].Name })
	result.Files = files
	result.Duration = time.Since(result.Started)

	logger.Info("export completed", "id", result.ID, "summary", result.Summary(), "duration", result.Duration)
	return result, nil
}
