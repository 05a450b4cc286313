// Package pipeline runs one full batch: extract the raw POS CSVs, clean and
// deduplicate them, build the order-detail table, calculate the KPIs, and
// write every configured sink.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"posetl/internal/config"
	"posetl/internal/datasource"
	"posetl/internal/datasource/file"
	"posetl/internal/datasource/httpds"
	"posetl/internal/detail"
	"posetl/internal/kpi"
	"posetl/internal/metrics"
	csvparser "posetl/internal/parser/csv"
	"posetl/internal/schema"
	"posetl/internal/sink"
	"posetl/internal/storage"
	"posetl/internal/transformer"
	"posetl/internal/transformer/builtin"
	"posetl/pkg/table"
)

// Seams for tests; production code never reassigns these.
var (
	newRepository = storage.New
	loadWarehouse = sink.LoadWarehouse
)

const defaultBatchSize = 500

// mandatoryTables must be present in the source; a run cannot produce the
// detail table without them.
var mandatoryTables = []string{"orders", "order_items"}

// Result summarizes one run.
type Result struct {
	RunID string

	// ParsedRows counts rows parsed per raw table; SkippedRows counts
	// malformed CSV records the parser discarded.
	ParsedRows  map[string]int
	SkippedRows map[string]int

	// CleanRows counts rows per table after validation and deduplication.
	CleanRows map[string]int

	DetailRows int

	// KPIs holds every computed result keyed by KPI name; KPIOrder preserves
	// calculation order for file and sheet output. SkippedKPIs lists optional
	// KPIs whose enrichment columns were absent.
	KPIs        map[string]*table.Table
	KPIOrder    []string
	SkippedKPIs []string

	LoadedRows int64
	Duration   time.Duration
}

// Run executes the pipeline described by cfg.
func Run(ctx context.Context, cfg config.Pipeline) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:       uuid.NewString(),
		ParsedRows:  map[string]int{},
		SkippedRows: map[string]int{},
		CleanRows:   map[string]int{},
		KPIs:        map[string]*table.Table{},
	}
	logger := log.With().Str("run_id", res.RunID).Str("job", cfg.Job).Logger()
	logger.Info().Str("source_kind", cfg.Source.Kind).Msg("run started")

	step := func(name string, fn func() error) error {
		t0 := time.Now()
		err := fn()
		metrics.RecordStep(cfg.Job, name, err, time.Since(t0))
		if err != nil {
			logger.Error().Err(err).Str("step", name).Msg("step failed")
			return fmt.Errorf("%s: %w", name, err)
		}
		logger.Info().Str("step", name).Dur("elapsed", time.Since(t0).Truncate(time.Millisecond)).Msg("step done")
		return nil
	}

	var raw map[string]*table.Table
	if err := step("extract", func() (err error) {
		raw, err = extract(ctx, cfg, res, logger)
		return err
	}); err != nil {
		return res, err
	}

	var clean map[string]*table.Table
	if err := step("transform", func() (err error) {
		clean, err = transformAll(raw, res)
		return err
	}); err != nil {
		return res, err
	}

	var dt *table.Table
	if err := step("detail", func() (err error) {
		dt, err = detail.Build(clean["orders"], clean["order_items"], clean["menu_items"], clean["categories"])
		if err == nil {
			res.DetailRows = dt.Len()
			metrics.RecordRows(cfg.Job, "detail_rows", int64(dt.Len()))
		}
		return err
	}); err != nil {
		return res, err
	}

	if err := step("kpi", func() error {
		return calculate(ctx, cfg, dt, res, logger)
	}); err != nil {
		return res, err
	}

	if cfg.Export.CSV || cfg.Export.Excel || cfg.Staging != "" {
		if err := step("export", func() error {
			return export(cfg, dt, res)
		}); err != nil {
			return res, err
		}
	}

	if storageEnabled(cfg.Storage) {
		if err := step("load", func() error {
			return load(ctx, cfg, clean, res)
		}); err != nil {
			return res, err
		}
		metrics.RecordRows(cfg.Job, "loaded", res.LoadedRows)
	}

	res.Duration = time.Since(start)
	logger.Info().
		Int("detail_rows", res.DetailRows).
		Int("kpis", len(res.KPIs)).
		Int64("loaded_rows", res.LoadedRows).
		Dur("duration", res.Duration.Truncate(time.Millisecond)).
		Msg("run finished")
	return res, nil
}

// extract reads every available raw table concurrently. Missing optional
// tables are skipped; a missing mandatory table fails the run.
func extract(ctx context.Context, cfg config.Pipeline, res *Result, logger zerolog.Logger) (map[string]*table.Table, error) {
	var (
		mu     sync.Mutex
		tables = map[string]*table.Table{}
	)
	g, gctx := errgroup.WithContext(ctx)

	for name, contract := range schema.All {
		name, contract := name, contract
		g.Go(func() error {
			src, present, err := sourceFor(cfg.Source, name)
			if err != nil {
				return err
			}
			if !present {
				if isMandatory(name) {
					return fmt.Errorf("mandatory table %s not found in source", name)
				}
				logger.Warn().Str("table", name).Msg("raw table absent, skipping")
				return nil
			}

			rc, err := src.Open(gctx)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			defer rc.Close()

			p := csvparser.NewParser(csvparser.Options{
				Comma:     delimiter(cfg.Source.Delimiter),
				TrimSpace: true,
				HeaderMap: cfg.Source.HeaderMaps[name],
				Columns:   contract.Columns(),
			})
			t, skipped, err := p.Parse(rc)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}

			mu.Lock()
			tables[name] = t
			res.ParsedRows[name] = t.Len()
			res.SkippedRows[name] = skipped
			mu.Unlock()
			metrics.RecordRows(cfg.Job, "parsed", int64(t.Len()))
			logger.Debug().Str("table", name).Int("rows", t.Len()).Int("skipped", skipped).Msg("table extracted")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func sourceFor(src config.Source, name string) (datasource.Source, bool, error) {
	switch src.Kind {
	case "dir":
		local := file.NewLocal(filepath.Join(src.Dir, name+".csv"))
		return local, local.Exists(), nil
	case "http":
		url, ok := src.URLs[name]
		if !ok {
			return nil, false, nil
		}
		return httpds.NewRemote(httpds.Config{URL: url}), true, nil
	default:
		return nil, false, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

func delimiter(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}

func isMandatory(name string) bool {
	for _, m := range mandatoryTables {
		if m == name {
			return true
		}
	}
	return false
}

// transformAll cleans every extracted table: type coercion, timestamp
// normalization, table-specific validation, then key deduplication.
// Normalization must precede validation so that an unparseable timestamp is
// quarantined to nil first and the validator then drops the row.
func transformAll(raw map[string]*table.Table, res *Result) (map[string]*table.Table, error) {
	clean := make(map[string]*table.Table, len(raw))
	for name, t := range raw {
		contract := schema.All[name]

		chain := transformer.Chain{builtin.Coerce{Contract: contract}}
		if ts := contract.TimestampColumns(); len(ts) > 0 {
			chain = append(chain, builtin.Normalize{Columns: ts, Layout: schema.Layout})
		}
		switch name {
		case "orders":
			chain = append(chain, builtin.OrderValidator{})
		case "menu_items":
			chain = append(chain, builtin.MenuItemValidator{})
		}
		if len(contract.DedupKeys) > 0 {
			chain = append(chain, builtin.DeDup{Keys: contract.DedupKeys})
		}

		out, err := chain.Apply(t)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		clean[name] = out
		res.CleanRows[name] = out.Len()
	}
	return clean, nil
}

// calculate runs the mandatory KPIs, then the optional ones whose enrichment
// columns are present. Calculations share the immutable detail snapshot and
// run concurrently up to cfg.Runtime.KPIWorkers.
func calculate(ctx context.Context, cfg config.Pipeline, dt *table.Table, res *Result, logger zerolog.Logger) error {
	kpis := kpi.Mandatory()
	for _, k := range kpi.Optional() {
		if hasAll(dt, k.RequiredColumns()) {
			kpis = append(kpis, k)
		} else {
			res.SkippedKPIs = append(res.SkippedKPIs, k.Name())
			logger.Warn().Str("kpi", k.Name()).Msg("enrichment columns absent, skipping")
		}
	}
	for _, k := range kpis {
		res.KPIOrder = append(res.KPIOrder, k.Name())
	}

	workers := cfg.Runtime.KPIWorkers
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, k := range kpis {
		k := k
		g.Go(func() error {
			out, err := k.Calculate(dt)
			metrics.RecordKPI(cfg.Job, k.Name(), err)
			if err != nil {
				return fmt.Errorf("kpi %s: %w", k.Name(), err)
			}
			mu.Lock()
			res.KPIs[k.Name()] = out
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func hasAll(t *table.Table, cols []string) bool {
	for _, c := range cols {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

// export writes the flat-file sinks: the staged detail table and the KPI
// results as CSVs and/or a workbook.
func export(cfg config.Pipeline, dt *table.Table, res *Result) error {
	if cfg.Staging != "" {
		if err := sink.WriteCSV(filepath.Join(cfg.Staging, "order_detail.csv"), dt); err != nil {
			return err
		}
	}
	if cfg.Export.CSV {
		if err := sink.WriteCSVDir(cfg.Warehouse, res.KPIs, res.KPIOrder); err != nil {
			return err
		}
	}
	if cfg.Export.Excel {
		name := cfg.Export.ExcelFile
		if name == "" {
			name = "kpi_report.xlsx"
		}
		if err := sink.WriteWorkbook(filepath.Join(cfg.Warehouse, name), res.KPIs, res.KPIOrder); err != nil {
			return err
		}
	}
	return nil
}

func storageEnabled(s config.Storage) bool {
	return s.Kind != "" && s.Kind != "none"
}

// load opens the configured warehouse backend and bulk-loads the cleaned raw
// tables in foreign-key order.
func load(ctx context.Context, cfg config.Pipeline, clean map[string]*table.Table, res *Result) error {
	repo, err := newRepository(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DSN})
	if err != nil {
		return err
	}
	defer repo.Close()

	batch := cfg.Runtime.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	n, err := loadWarehouse(ctx, repo, cfg.Storage.Kind, clean, batch,
		cfg.Storage.AutoCreateSchema, cfg.Storage.ApplyViews)
	res.LoadedRows = n
	return err
}
