package mapview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
const state = {{.State}};
const map = L.map('map').setView([state.center.lat, state.center.lon], state.zoom);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  maxZoom: 19,
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
(state.markers || []).forEach(m => L.marker([m.lat, m.lon]).addTo(map).bindTooltip(m.label));
(state.paths || []).forEach(p => L.polyline(p.points.map(q => [q.lat, q.lon]), {color: p.color, weight: p.width}).addTo(map));
document.body.dataset.ready = "true";
</script>
</body>
</html>
`))

type page struct {
	Title string
	State State
}

// RenderHTML writes a self-contained Leaflet page showing state.
func RenderHTML(w io.Writer, title string, state State) error {
	if err := pageTemplate.Execute(w, page{Title: title, State: state}); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// WriteHTML renders state to a file, creating parent directories.
func WriteHTML(path, title string, state State) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, title, state); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("map: create output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("map: write %q: %w", path, err)
	}
	return nil
}
