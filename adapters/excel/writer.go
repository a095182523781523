package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gopower/app"
	"gopower/domain/sweep"
	"gopower/internal/errors"
)

// Writer produces an .xlsx planning report: one sheet per sweep with the
// evaluation table and a native line chart over the required-n column.
type Writer struct{}

// NewWriter creates a workbook writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteWorkbook writes all sweep results to a single workbook at path.
func (w *Writer) WriteWorkbook(results []*app.SweepResult, path string) error {
	if len(results) == 0 {
		return errors.InvalidInput("no sweep results to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, result := range results {
		sheet := sheetName(result.Axis)
		if i == 0 {
			// Reuse the default sheet for the first sweep.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return errors.RenderError("failed to rename report sheet", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return errors.RenderError("failed to add report sheet", err)
			}
		}
		if err := w.writeSheet(f, sheet, result); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.RenderError("failed to save workbook", err)
	}
	return nil
}

func (w *Writer) writeSheet(f *excelize.File, sheet string, result *app.SweepResult) error {
	headers := []interface{}{axisHeader(result.Axis), "raw sample size", "required per group"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.RenderError("failed to write header", err)
		}
	}

	for r, ev := range result.Evaluations {
		rowIdx := r + 2
		values := []interface{}{ev.Point.Value, ev.RawN, ev.RequiredN}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.RenderError("failed to write evaluation row", err)
			}
		}
	}

	lastRow := len(result.Evaluations) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$C$1", sheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("%s!$C$2:$C$%d", sheet, lastRow),
		}},
		Title: []excelize.RichTextRun{
			{Text: fmt.Sprintf("Required sample size by %s", axisHeader(result.Axis))},
		},
		Legend:   excelize.ChartLegend{Position: "bottom"},
		PlotArea: excelize.ChartPlotArea{ShowVal: true},
	}
	if err := f.AddChart(sheet, "E2", chart); err != nil {
		return errors.RenderError("failed to add sweep chart", err)
	}
	return nil
}

func sheetName(axis sweep.Axis) string {
	switch axis {
	case sweep.AxisMDE:
		return "MDE"
	case sweep.AxisAlpha:
		return "Significance"
	case sweep.AxisBaseline:
		return "Baseline"
	default:
		return string(axis)
	}
}

func axisHeader(axis sweep.Axis) string {
	switch axis {
	case sweep.AxisMDE:
		return "minimum detectable effect"
	case sweep.AxisAlpha:
		return "significance level"
	case sweep.AxisBaseline:
		return "baseline rate"
	default:
		return string(axis)
	}
}
