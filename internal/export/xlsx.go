package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/stepbench/internal/experiment"
	"github.com/xuri/excelize/v2"
)

// ErrTooManyRows is returned when a series does not fit in one worksheet.
var ErrTooManyRows = errors.New("export: series exceeds worksheet row limit")

// cellValue keeps non-finite floats readable; excelize would otherwise
// write them as invalid numeric cells.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatFloat(v)
	}
	return v
}

// WriteXLSX writes a Summary sheet plus Errors and Positions sheets with one
// column per scheme. Series longer than a worksheet allows are rejected
// rather than cut short.
func WriteXLSX(w io.Writer, rep *experiment.Report) error {
	grid := rep.Result.Grid
	if grid.N+1 > excelize.TotalRows {
		return fmt.Errorf("%w: %d samples plus header, limit %d", ErrTooManyRows, grid.N, excelize.TotalRows)
	}

	f := excelize.NewFile()
	defer f.Close()

	schemes := rep.Schemes()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	header := []any{"Scheme", "Max", "Final", "Mean", "RMS", "EnergyDrift", "Stability"}
	if err := f.SetSheetRow(summary, "A1", &header); err != nil {
		return err
	}
	for r, name := range schemes {
		sum := rep.Summaries[name]
		m := rep.Result.Metrics[name]
		row := []any{
			name,
			cellValue(sum.Max),
			cellValue(sum.Final),
			cellValue(sum.Mean),
			cellValue(sum.RMS),
			cellValue(m["energy_drift"]),
			cellValue(m["stability"]),
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	writeSeries := func(sheet string, exact []float64, series map[string][]float64) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		header := []any{"time"}
		if exact != nil {
			header = append(header, "exact")
		}
		for _, name := range schemes {
			header = append(header, name)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}

		row := make([]any, 0, len(header))
		for i := 0; i < grid.N; i++ {
			row = append(row[:0], grid.At(i))
			if exact != nil {
				row = append(row, exact[i])
			}
			for _, name := range schemes {
				row = append(row, cellValue(series[name][i]))
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
			}
		}
		return nil
	}

	positions := make(map[string][]float64, len(schemes))
	for _, name := range schemes {
		positions[name] = rep.Result.Trajectories[name].Positions()
	}

	if err := writeSeries("Errors", nil, rep.Errors); err != nil {
		return err
	}
	if err := writeSeries("Positions", rep.Reference.Series(grid), positions); err != nil {
		return err
	}

	return f.Write(w)
}
