// Package export writes benchmark reports to files: per-scheme trajectories
// and error series as CSV, JSON or XLSX, and an SVG error plot.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/stepbench/internal/experiment"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
	SVG  Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case CSV, JSON, XLSX, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json, xlsx or svg)", s)
}

// FormatFor picks the format from an explicit name or, failing that, the
// file extension.
func FormatFor(name, path string) (Format, error) {
	if name != "" {
		return ParseFormat(name)
	}
	return ParseFormat(filepath.Ext(path))
}

func Write(w io.Writer, f Format, rep *experiment.Report) error {
	switch f {
	case CSV:
		return WriteCSV(w, rep)
	case JSON:
		return WriteJSON(w, rep)
	case XLSX:
		return WriteXLSX(w, rep)
	case SVG:
		_, err := io.WriteString(w, ErrorsToSVG(rep, 800, 400, true))
		return err
	}
	return fmt.Errorf("unknown export format %q", f)
}

func WriteFile(path string, f Format, rep *experiment.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, rep); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
