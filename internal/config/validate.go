// This file adds a lightweight linter for Pipeline values: static checks over
// a decoded Pipeline returning a list of issues (errors and warnings) that
// callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users but
	// does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "storage.kind").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error where needed.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// storageKinds are the database backends a pipeline may target. "none"
// disables the relational load.
var storageKinds = map[string]struct{}{
	"sqlite": {}, "postgres": {}, "mysql": {}, "mssql": {}, "none": {}, "": {},
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateStorage(p.Storage)...)

	if p.Warehouse == "" && (p.Export.CSV || p.Export.Excel) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "warehouse",
			Message:  "warehouse directory required when CSV or Excel export is enabled",
		})
	}
	if p.Runtime.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.batch_size",
			Message:  "batch_size must not be negative",
		})
	}
	if p.Runtime.KPIWorkers < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.kpi_workers",
			Message:  "kpi_workers must not be negative",
		})
	}

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	switch s.Kind {
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
	case "dir":
		if strings.TrimSpace(s.Dir) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.dir",
				Message:  "dir source requires a non-empty directory path",
			})
		}
	case "http":
		if len(s.URLs) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.urls",
				Message:  "http source requires at least one table URL",
			})
		}
		for tbl, u := range s.URLs {
			if strings.TrimSpace(u) == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "source.urls." + tbl,
					Message:  "URL must not be empty",
				})
			}
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}

	if len(s.Delimiter) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.delimiter",
			Message:  "delimiter must be a single character",
		})
	}

	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if _, ok := storageKinds[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}
	enabled := s.Kind != "" && s.Kind != "none"
	if enabled && strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  fmt.Sprintf("storage kind %q requires a DSN", s.Kind),
		})
	}
	if !enabled && s.ApplyViews {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.apply_views",
			Message:  "apply_views has no effect without a storage backend",
		})
	}

	return issues
}
