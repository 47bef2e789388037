package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoshape/internal/geom"
	"geoshape/internal/logger"
)

var (
	convertTo      string
	convertOut     string
	convertReverse bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a geometry file to WKT, GeoJSON or WKB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := geom.Load(args[0], cfg.Options())
		if err != nil {
			return err
		}
		if convertReverse {
			for _, s := range l.Shapes {
				s.Revert()
			}
		}
		w := cmd.OutOrStdout()
		if convertOut != "" {
			f, err := os.Create(convertOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := writeLayer(w, l, convertTo); err != nil {
			return err
		}
		logger.L.Info("converted", zap.String("in", args[0]), zap.String("to", convertTo),
			zap.Int("shapes", len(l.Shapes)), zap.Bool("reverse", convertReverse))
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "wkt", "output format: wkt, geojson, wkb")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "output file (default stdout)")
	convertCmd.Flags().BoolVar(&convertReverse, "reverse", false, "reverse the vertex order of every part")
}

// writeLayer encodes l in the requested format.
func writeLayer(w io.Writer, l *geom.Layer, format string) error {
	switch format {
	case "wkt":
		for _, s := range l.Shapes {
			text, err := geom.EncodeWKT(s)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		return nil
	case "geojson":
		b, err := geom.EncodeGeoJSONCollection(l)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "wkb":
		if len(l.Shapes) != 1 {
			return errors.Errorf("wkb output needs exactly one shape, got %d", len(l.Shapes))
		}
		b, err := geom.EncodeWKB(l.Shapes[0])
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return errors.Errorf("unknown output format %q", format)
}
