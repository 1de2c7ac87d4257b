package mapview

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonas-p/go-shp"
)

// ExportShapefiles writes the markers of state to <base>_markers.shp and
// its paths to <base>_paths.shp (with their .shx/.dbf companions). Empty
// layers are skipped. It returns the paths of the files written.
func ExportShapefiles(state State, base string) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return nil, fmt.Errorf("shapefile: create output dir: %w", err)
	}

	var written []string
	if len(state.Markers) > 0 {
		path := base + "_markers.shp"
		if err := writeMarkers(path, state.Markers); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if len(state.Paths) > 0 {
		path := base + "_paths.shp"
		if err := writePaths(path, state.Paths); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeMarkers(path string, markers []Marker) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("shapefile: create %q: %w", path, err)
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{shp.StringField("LABEL", 128)}); err != nil {
		return fmt.Errorf("shapefile: set fields: %w", err)
	}
	for _, m := range markers {
		n := w.Write(&shp.Point{X: m.Lon, Y: m.Lat})
		if err := w.WriteAttribute(int(n), 0, m.Label); err != nil {
			return fmt.Errorf("shapefile: write label: %w", err)
		}
	}
	return nil
}

func writePaths(path string, paths []Path) error {
	w, err := shp.Create(path, shp.POLYLINE)
	if err != nil {
		return fmt.Errorf("shapefile: create %q: %w", path, err)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.StringField("COLOR", 16),
		shp.NumberField("WIDTH", 4),
	}
	if err := w.SetFields(fields); err != nil {
		return fmt.Errorf("shapefile: set fields: %w", err)
	}
	for _, p := range paths {
		points := make([]shp.Point, len(p.Points))
		for i, q := range p.Points {
			points[i] = shp.Point{X: q.Lon, Y: q.Lat}
		}
		n := w.Write(shp.NewPolyLine([][]shp.Point{points}))
		if err := w.WriteAttribute(int(n), 0, p.Color); err != nil {
			return fmt.Errorf("shapefile: write color: %w", err)
		}
		if err := w.WriteAttribute(int(n), 1, p.Width); err != nil {
			return fmt.Errorf("shapefile: write width: %w", err)
		}
	}
	return nil
}
