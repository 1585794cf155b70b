package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/stepbench/internal/experiment"
)

var summaryColumns = []string{"scheme", "max err", "final err", "rms err", "energy drift", "stability", "errors"}

const sparkWidth = 24

// SummaryTable renders one row per scheme in run order. Schemes that
// produced non-finite states are flagged with the first bad step.
func SummaryTable(rep *experiment.Report, st Styles) string {
	rows := make([][]string, 0, len(rep.Schemes()))
	for _, name := range rep.Schemes() {
		sum := rep.Summaries[name]
		m := rep.Result.Metrics[name]
		label := name
		if step, ok := rep.Result.Diverged[name]; ok {
			label = fmt.Sprintf("%s (diverged @%d)", name, step)
		}
		rows = append(rows, []string{
			label,
			sci(sum.Max),
			sci(sum.Final),
			sci(sum.RMS),
			sci(m["energy_drift"]),
			fmt.Sprintf("%.3f", m["stability"]),
			st.Sparkline(logErrors(rep.Errors[name]), sparkWidth),
		})
	}

	title := st.Title.Render(fmt.Sprintf("dt=%g  t_final=%g  steps=%d  mode=%s",
		rep.Result.Grid.Dt, rep.Result.Grid.Final, rep.Result.Grid.N, rep.Config.Mode))
	return title + "\n" + renderTable(summaryColumns, rows, st, func(row, col int) lipgloss.Style {
		if col == 0 {
			if _, ok := rep.Result.Diverged[rep.Schemes()[row]]; ok {
				return st.Bad
			}
			return st.Active
		}
		return st.Value
	})
}

// SweepTable renders final errors per dt and the observed order between
// neighbouring step sizes.
func SweepTable(sr *experiment.SweepReport, st Styles) string {
	header := []string{"scheme"}
	for _, dt := range sr.Dts {
		header = append(header, fmt.Sprintf("dt=%g", dt))
	}
	for i := 1; i < len(sr.Dts); i++ {
		header = append(header, fmt.Sprintf("p(%g)", sr.Dts[i]))
	}

	rows := make([][]string, 0, len(sr.Rows))
	for _, r := range sr.Rows {
		row := []string{r.Scheme}
		for _, v := range r.Final {
			row = append(row, sci(v))
		}
		for _, p := range r.Order {
			row = append(row, fmt.Sprintf("%.2f", p))
		}
		rows = append(rows, row)
	}
	return renderTable(header, rows, st, func(row, col int) lipgloss.Style {
		if col == 0 {
			return st.Active
		}
		return st.Value
	})
}

func renderTable(header []string, rows [][]string, st Styles, cell func(row, col int) lipgloss.Style) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = st.Label.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(st.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...)))
	b.WriteByte('\n')
	for r, row := range rows {
		for i, c := range row {
			cols[i] = cell(r, i).Width(widths[i] + 2).Render(c)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteByte('\n')
	}
	return st.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func sci(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%.3e", v)
}
