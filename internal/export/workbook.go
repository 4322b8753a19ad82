package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// Sheet names in the exported workbook.
const (
	SheetRawData    = "Raw Data"
	SheetFiltered   = "Filtered Data"
	SheetOperations = "Operations Metrics"
	SheetKPIs       = "KPIs"
)

// Data is everything an export run writes out.
type Data struct {
	Snapshot *models.Snapshot
	Filter   models.FilterResult
}

// WriteWorkbook writes the raw, filtered and operations tables plus the KPIs to an XLSX file.
func WriteWorkbook(path string, data Data) error {
	if data.Snapshot == nil {
		return fmt.Errorf("no snapshot to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetRawData); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetFiltered, SheetOperations, SheetKPIs} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	sales := func(records []models.SalesRecord) [][]any {
		rows := make([][]any, len(records))
		for i, r := range records {
			rows[i] = []any{r.Date.Format(models.DateLayout), r.Leads, r.Sales, r.ConversionRate, r.Revenue}
		}
		return rows
	}

	ops := make([][]any, len(data.Snapshot.Team))
	for i, o := range data.Snapshot.Team {
		ops[i] = []any{o.Name, o.TasksCompleted, o.AvgDaysPerTask, o.ProjectsCompleted, o.LateProjects, o.TaskEfficiency}
	}

	tables := []struct {
		sheet   string
		headers []string
		rows    [][]any
	}{
		{SheetRawData, models.SalesColumns, sales(data.Snapshot.Records)},
		{SheetFiltered, models.SalesColumns, sales(data.Filter.Records)},
		{SheetOperations, models.OperationsColumns, ops},
		{SheetKPIs, []string{"Metric", "Value"}, kpiRows(data)},
	}

	for _, t := range tables {
		if err := writeTable(f, t.sheet, t.headers, t.rows, bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func kpiRows(data Data) [][]any {
	var rows [][]any
	for _, m := range analytics.KPIMetrics(data.Snapshot.Summary) {
		rows = append(rows, []any{m.Label, m.Value})
	}
	rows = append(rows,
		[]any{"Filter Range", data.Filter.Range.String()},
		[]any{"Filtered Records", len(data.Filter.Records)},
	)
	for _, m := range analytics.KPIMetrics(data.Filter.Summary) {
		rows = append(rows, []any{"Filtered " + m.Label, m.Value})
	}
	for _, m := range analytics.OperationsMetrics(data.Snapshot.Operations) {
		rows = append(rows, []any{m.Label, m.Value})
	}
	rows = append(rows, []any{"Seed", data.Snapshot.Seed})
	return rows
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	lastCol, _, _ := excelize.SplitCellName(last)
	_ = f.SetColWidth(sheet, "A", lastCol, 18)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
