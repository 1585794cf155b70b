package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/stepbench/internal/experiment"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteCSV writes one row per grid point: time, exact position, then
// position and error for every scheme in run order.
func WriteCSV(out io.Writer, rep *experiment.Report) error {
	w := csv.NewWriter(out)

	grid := rep.Result.Grid
	schemes := rep.Schemes()

	header := []string{"time", "exact"}
	for _, name := range schemes {
		header = append(header, "x_"+name, "err_"+name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < grid.N; i++ {
		t := grid.At(i)
		row[0] = formatFloat(t)
		row[1] = formatFloat(rep.Reference.Exact(t))
		for j, name := range schemes {
			row[2+2*j] = formatFloat(rep.Result.Trajectories[name].States[i].Position)
			row[3+2*j] = formatFloat(rep.Errors[name][i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
