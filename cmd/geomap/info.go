package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"geoshape/internal/geom"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print shape, part and point statistics of a geometry file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := geom.Load(args[0], cfg.Options())
		if err != nil {
			return err
		}
		sum := summarize(args[0], l)
		if infoJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}
		printSummary(cmd.OutOrStdout(), sum)
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
}

type rangeSummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type shapeSummary struct {
	Kind   string        `json:"kind"`
	Vertex string        `json:"vertex"`
	Parts  []int         `json:"parts"`
	Points int           `json:"points"`
	BBox   [4]float64    `json:"bbox"`
	Z      *rangeSummary `json:"z,omitempty"`
	M      *rangeSummary `json:"m,omitempty"`
	Length float64       `json:"length_m"`
	Area   float64       `json:"area,omitempty"`
	Closed bool          `json:"closed,omitempty"`
}

type layerSummary struct {
	Path     string         `json:"path"`
	Vertex   string         `json:"vertex"`
	Points   int            `json:"points"`
	Lines    int            `json:"lines"`
	Polygons int            `json:"polygons"`
	Vertices int            `json:"vertices"`
	BBox     [4]float64     `json:"bbox"`
	Z        *rangeSummary  `json:"z,omitempty"`
	M        *rangeSummary  `json:"m,omitempty"`
	Shapes   []shapeSummary `json:"shapes"`
}

func bboxArray(b geom.BBox) [4]float64 {
	return [4]float64{b.MinX, b.MinY, b.MaxX, b.MaxY}
}

func rangeOf(r geom.Range) *rangeSummary {
	if r.IsEmpty() {
		return nil
	}
	return &rangeSummary{Min: r.Min, Max: r.Max}
}

func summarize(path string, l *geom.Layer) layerSummary {
	pts, lines, polys := l.Counts()
	sum := layerSummary{
		Path:     path,
		Vertex:   l.VertexKind().String(),
		Points:   pts,
		Lines:    lines,
		Polygons: polys,
		Vertices: l.PointCount(),
		BBox:     bboxArray(l.Extent()),
		Z:        rangeOf(l.ZRange()),
		M:        rangeOf(l.MRange()),
	}
	for _, s := range l.Shapes {
		ss := shapeSummary{
			Kind:   s.Kind().String(),
			Vertex: s.VertexKind().String(),
			Points: s.PointCount(),
			BBox:   bboxArray(s.Extent()),
			Z:      rangeOf(s.ZRange()),
			M:      rangeOf(s.MRange()),
		}
		for _, p := range s.Parts() {
			ss.Parts = append(ss.Parts, p.Count())
		}
		switch s.Kind() {
		case geom.ShapeLine:
			ss.Length = s.GeodesicLength()
		case geom.ShapePolygon:
			if outer := s.Part(0); outer != nil {
				ss.Length = outer.GeodesicLength()
				ss.Area = outer.Area()
				ss.Closed = outer.IsClosed(0)
			}
		}
		sum.Shapes = append(sum.Shapes, ss)
	}
	return sum
}

var (
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func printSummary(w io.Writer, sum layerSummary) {
	fmt.Fprintln(w, headStyle.Render(sum.Path))
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("vertex kind:"), sum.Vertex)
	fmt.Fprintf(w, "%s pts=%d ls=%d poly=%d vertices=%s\n", keyStyle.Render("counts:"),
		sum.Points, sum.Lines, sum.Polygons, humanize.Comma(int64(sum.Vertices)))
	fmt.Fprintf(w, "%s [%.6f, %.6f, %.6f, %.6f]\n", keyStyle.Render("bbox:"),
		sum.BBox[0], sum.BBox[1], sum.BBox[2], sum.BBox[3])
	if sum.Z != nil {
		fmt.Fprintf(w, "%s %g .. %g\n", keyStyle.Render("z:"), sum.Z.Min, sum.Z.Max)
	}
	if sum.M != nil {
		fmt.Fprintf(w, "%s %g .. %g\n", keyStyle.Render("m:"), sum.M.Min, sum.M.Max)
	}
	for i, s := range sum.Shapes {
		line := fmt.Sprintf("#%d %s/%s parts=%v points=%d", i+1, s.Kind, s.Vertex, s.Parts, s.Points)
		if s.Length > 0 {
			line += " length=" + humanize.SIWithDigits(s.Length, 2, "m")
		}
		if s.Area != 0 {
			line += fmt.Sprintf(" area=%.6g", s.Area)
		}
		fmt.Fprintln(w, line)
	}
}
