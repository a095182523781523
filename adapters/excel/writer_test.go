package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gopower/app"
	"gopower/domain/sweep"
)

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	svc := app.NewSweepService(sweep.Defaults())

	var results []*app.SweepResult
	for _, axis := range []sweep.Axis{sweep.AxisMDE, sweep.AxisAlpha, sweep.AxisBaseline} {
		result, err := svc.RunAxis(context.Background(), axis)
		require.NoError(t, err)
		results = append(results, result)
	}

	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, NewWriter().WriteWorkbook(results, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"MDE", "Significance", "Baseline"}, f.GetSheetList())

	header, err := f.GetCellValue("MDE", "A1")
	require.NoError(t, err)
	assert.Equal(t, "minimum detectable effect", header)

	// Last MDE grid point is a 10% lift on the 50% baseline: 1565 per group.
	n, err := f.GetCellValue("MDE", "C20")
	require.NoError(t, err)
	assert.Equal(t, "1565", n)
}

func TestWriteWorkbook_RejectsEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	err := NewWriter().WriteWorkbook(nil, path)
	require.Error(t, err)
}
