// Package config defines the canonical, JSON-serializable configuration model
// for the pipeline. It is intentionally small and explicit so that runs can
// be loaded from disk and passed through the program without glue code.
//
// Go field names mirror the JSON structure used in pipeline files under
// configs/*.json. Decoding is performed by the standard library; environment
// overrides come in through ApplyEnv (12-factor style).
package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"
)

// Pipeline describes one full ETL run.
type Pipeline struct {
	// Job identifies the run for metrics labeling and logs, e.g.
	// "restaurant_daily".
	Job string `json:"job"`

	// Source describes where the raw CSV extracts come from.
	Source Source `json:"source"`

	// Staging is the directory the enriched order-detail table is written to.
	Staging string `json:"staging"`

	// Warehouse is the directory KPI result files are written to.
	Warehouse string `json:"warehouse"`

	// Storage describes the relational store results are loaded into.
	Storage Storage `json:"storage"`

	// Export toggles the flat-file outputs.
	Export Export `json:"export"`

	// Runtime controls batching and KPI concurrency.
	Runtime RuntimeConfig `json:"runtime"`
}

// Source identifies where raw extracts are read from.
type Source struct {
	// Kind selects the source implementation: "dir" (local directory with one
	// <table>.csv per raw table) or "http" (per-table URLs).
	Kind string `json:"kind"`

	// Dir is the extract directory for kind "dir".
	Dir string `json:"dir,omitempty"`

	// URLs maps raw table name to CSV URL for kind "http".
	URLs map[string]string `json:"urls,omitempty"`

	// Delimiter overrides the CSV field delimiter; "," by default.
	Delimiter string `json:"delimiter,omitempty"`

	// HeaderMaps maps raw table name to a header rename map, for extracts
	// whose canonicalized headers do not match the contracts.
	HeaderMaps map[string]map[string]string `json:"header_maps,omitempty"`
}

// Storage describes the warehouse database. Kind "" or "none" disables the
// relational load; results still go to the flat-file exports.
type Storage struct {
	// Kind is one of "sqlite", "postgres", "mysql", "mssql", or "none".
	Kind string `json:"kind"`

	// DSN is the backend connection string (file path for sqlite).
	DSN string `json:"dsn"`

	// AutoCreateSchema applies the restaurant schema DDL before loading.
	AutoCreateSchema bool `json:"auto_create_schema"`

	// ApplyViews creates the derived KPI SQL views after loading.
	ApplyViews bool `json:"apply_views"`
}

// Export toggles flat-file outputs.
type Export struct {
	// CSV writes one <kpi>.csv per result table into the warehouse dir.
	CSV bool `json:"csv"`

	// Excel writes a single workbook with one sheet per KPI.
	Excel bool `json:"excel"`

	// ExcelFile is the workbook filename inside the warehouse dir;
	// "kpi_report.xlsx" when empty.
	ExcelFile string `json:"excel_file,omitempty"`
}

// RuntimeConfig controls batching and concurrency.
type RuntimeConfig struct {
	// BatchSize is the row batch size for warehouse inserts; 500 when zero.
	BatchSize int `json:"batch_size"`

	// KPIWorkers bounds concurrent KPI calculations; 1 (sequential) when
	// zero. KPIs share an immutable detail snapshot, so any value is safe.
	KPIWorkers int `json:"kpi_workers"`
}

// Load decodes a Pipeline from JSON.
func Load(r io.Reader) (Pipeline, error) {
	var p Pipeline
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode pipeline config: %w", err)
	}
	return p, nil
}

// envOverrides are the environment variables that take precedence over the
// pipeline file, prefixed POSETL_ (e.g. POSETL_DATABASE_URL), plus the bare
// DATABASE_URL read by ApplyEnv for parity with common deployments.
type envOverrides struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	StorageKind string `envconfig:"STORAGE_KIND"`
	BatchSize   int    `envconfig:"BATCH_SIZE"`
}

// ApplyEnv overlays environment overrides onto p and returns the result.
func ApplyEnv(p Pipeline) (Pipeline, error) {
	var env envOverrides
	if err := envconfig.Process("posetl", &env); err != nil {
		return p, fmt.Errorf("read env overrides: %w", err)
	}
	if env.DatabaseURL != "" {
		p.Storage.DSN = env.DatabaseURL
	}
	if env.StorageKind != "" {
		p.Storage.Kind = env.StorageKind
	}
	if env.BatchSize > 0 {
		p.Runtime.BatchSize = env.BatchSize
	}
	return p, nil
}
