package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("MAP_DEFAULT_ZOOM", "")

	cfg := Load()
	if cfg.DatasetSource != "csv" {
		t.Errorf("DatasetSource: got %q, want csv", cfg.DatasetSource)
	}
	if cfg.DefaultZoom != 10 {
		t.Errorf("DefaultZoom: got %d, want 10", cfg.DefaultZoom)
	}
	if cfg.DefaultLat != -37.8136 || cfg.DefaultLon != 144.9631 {
		t.Errorf("default center: got (%v, %v)", cfg.DefaultLat, cfg.DefaultLon)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "Postgres")
	t.Setenv("MAP_FOCUS_ZOOM", "16")
	t.Setenv("MAP_SNAPSHOT", "true")
	t.Setenv("MAP_DEFAULT_LAT", "not-a-number")

	cfg := Load()
	if cfg.DatasetSource != "postgres" {
		t.Errorf("DatasetSource: got %q, want postgres", cfg.DatasetSource)
	}
	if cfg.FocusZoom != 16 {
		t.Errorf("FocusZoom: got %d, want 16", cfg.FocusZoom)
	}
	if !cfg.MapSnapshot {
		t.Error("MapSnapshot should be true")
	}
	if cfg.DefaultLat != -37.8136 {
		t.Errorf("invalid float should fall back, got %v", cfg.DefaultLat)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
