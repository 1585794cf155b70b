package export

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/stepbench/internal/experiment"
)

// Number encodes non-finite values as null, which encoding/json otherwise
// rejects.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func numbers(xs []float64) []Number {
	out := make([]Number, len(xs))
	for i, x := range xs {
		out[i] = Number(x)
	}
	return out
}

type SchemeData struct {
	Name       string            `json:"name"`
	Positions  []Number          `json:"positions"`
	Velocities []Number          `json:"velocities"`
	Errors     []Number          `json:"errors"`
	MaxError   Number            `json:"max_error"`
	FinalError Number            `json:"final_error"`
	RMSError   Number            `json:"rms_error"`
	Metrics    map[string]Number `json:"metrics"`
}

type ExportData struct {
	Dt        float64      `json:"dt"`
	Duration  float64      `json:"duration"`
	Mass      float64      `json:"mass"`
	Stiffness float64      `json:"stiffness"`
	X0        float64      `json:"x0"`
	V0        float64      `json:"v0"`
	Mode      string       `json:"extrapolation"`
	Steps     int          `json:"steps"`
	Times     []float64    `json:"times"`
	Exact     []Number     `json:"exact"`
	Schemes   []SchemeData `json:"schemes"`
}

func NewExportData(rep *experiment.Report) ExportData {
	grid := rep.Result.Grid
	run := rep.Config.Run
	data := ExportData{
		Dt:        grid.Dt,
		Duration:  grid.Final,
		Mass:      run.Mass,
		Stiffness: run.Stiffness,
		X0:        run.X0,
		V0:        run.V0,
		Mode:      rep.Config.Mode.String(),
		Steps:     grid.N,
		Times:     grid.Times(),
		Exact:     numbers(rep.Reference.Series(grid)),
		Schemes:   make([]SchemeData, 0, len(rep.Schemes())),
	}

	for _, name := range rep.Schemes() {
		traj := rep.Result.Trajectories[name]
		sum := rep.Summaries[name]
		metrics := make(map[string]Number, len(rep.Result.Metrics[name]))
		for k, v := range rep.Result.Metrics[name] {
			metrics[k] = Number(v)
		}
		data.Schemes = append(data.Schemes, SchemeData{
			Name:       name,
			Positions:  numbers(traj.Positions()),
			Velocities: numbers(traj.Velocities()),
			Errors:     numbers(rep.Errors[name]),
			MaxError:   Number(sum.Max),
			FinalError: Number(sum.Final),
			RMSError:   Number(sum.RMS),
			Metrics:    metrics,
		})
	}
	return data
}

func WriteJSON(w io.Writer, rep *experiment.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(rep))
}
