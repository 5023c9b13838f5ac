package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"steamtab/internal/assets"
	"steamtab/internal/catalog"
	"steamtab/internal/config"
	"steamtab/internal/export"
	"steamtab/internal/fileutil"
	"steamtab/internal/ingest"
	"steamtab/internal/logging"
	"steamtab/internal/runstore"
)

// Options selects which pipeline stages run.
type Options struct {
	SkipExport bool
	SkipImages bool
}

// Result summarizes one completed pipeline run.
type Result struct {
	RunID            string
	RecordsTotal     int
	RecordsMalformed int
	RowsExported     int
	ExportPath       string
	Assets           assets.Summary
}

// Runner executes the catalog pipeline: ingest the record store, normalize
// records into export rows, write the table, drain the image queue, and
// record the run in history. The history store is optional; a nil store only
// disables run recording.
type Runner struct {
	cfg    *config.Config
	store  *runstore.Store
	logger *slog.Logger
}

// New constructs a Runner.
func New(cfg *config.Config, store *runstore.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, store: store, logger: logger}
}

// Run executes the pipeline once. An export write failure is logged, carried,
// and reported at the end; it does not stop the image queue. Only ingestion
// failures, a missing record store, and a concurrent run abort early.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.LogDir, "steamtab.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	started := time.Now().UTC()
	logger := logging.NewComponentLogger(r.logger, "pipeline").With(logging.String("run_id", runID))
	logger.Info("run started", logging.String("record_store", r.cfg.Paths.RecordStore))

	if !fileutil.Exists(r.cfg.Paths.RecordStore) {
		return nil, fmt.Errorf("record store %s not found; run `steamtab fetch` first", r.cfg.Paths.RecordStore)
	}

	policy, err := ingest.ParsePolicy(r.cfg.Ingest.OnMalformed)
	if err != nil {
		return nil, err
	}
	ds, err := ingest.Load(ctx, r.cfg.Paths.RecordStore, ingest.Options{Policy: policy, Logger: r.logger})
	if err != nil {
		return nil, err
	}

	rows, refs := r.normalize(ds, logger)

	result := &Result{
		RunID:            runID,
		RecordsTotal:     len(ds.Records),
		RecordsMalformed: ds.Malformed,
		RowsExported:     len(rows),
		ExportPath:       r.cfg.Paths.ExportFile,
	}

	var exportErr error
	if opts.SkipExport {
		logger.Info("export stage skipped")
	} else if exportErr = export.Write(r.cfg.Paths.ExportFile, rows); exportErr != nil {
		logger.Error("export write failed; continuing with image downloads", logging.Error(exportErr))
	} else {
		logger.Info("export written",
			logging.String("path", r.cfg.Paths.ExportFile),
			logging.Int("rows", len(rows)),
		)
	}

	var outcomes []assets.Outcome
	if opts.SkipImages {
		logger.Info("image stage skipped")
	} else {
		queue := assets.New(r.cfg, r.logger)
		summary, queueOutcomes, err := queue.Run(ctx, refs)
		if err != nil {
			return nil, err
		}
		result.Assets = summary
		outcomes = queueOutcomes
	}

	r.recordRun(ctx, result, started, outcomes, logger)

	logger.Info("run finished",
		logging.Int("rows", result.RowsExported),
		logging.Int("images_succeeded", result.Assets.Succeeded),
		logging.Int("images_failed", result.Assets.Failed),
		logging.Duration("elapsed", time.Since(started)),
	)
	if exportErr != nil {
		return result, exportErr
	}
	return result, nil
}

// normalize maps raw records to export rows and image references. Rejected
// records (failed lookups, non-game entries) are counted and dropped.
func (r *Runner) normalize(ds *ingest.Dataset, logger *slog.Logger) ([]catalog.Row, []assets.Ref) {
	rows := make([]catalog.Row, 0, len(ds.Records))
	refs := make([]assets.Ref, 0, len(ds.Records))
	for _, rec := range ds.Records {
		row, ok := catalog.Normalize(rec)
		if !ok {
			continue
		}
		rows = append(rows, row)
		refs = append(refs, assets.Ref{ID: row.ID, URL: row.Image, FileName: row.LocalImage})
	}
	logger.Info("records normalized",
		logging.Int("accepted", len(rows)),
		logging.Int("rejected", len(ds.Records)-len(rows)),
	)
	return rows, refs
}

func (r *Runner) recordRun(ctx context.Context, result *Result, started time.Time, outcomes []assets.Outcome, logger *slog.Logger) {
	if r.store == nil {
		return
	}

	var failures []runstore.AssetFailure
	for _, outcome := range outcomes {
		if outcome.Status != assets.StatusFailed {
			continue
		}
		failures = append(failures, runstore.AssetFailure{
			RunID:  result.RunID,
			AppID:  outcome.Ref.ID,
			URL:    outcome.Ref.URL,
			Detail: outcome.Detail,
		})
	}

	run := runstore.Run{
		ID:               result.RunID,
		StartedAt:        started,
		FinishedAt:       time.Now().UTC(),
		RecordsTotal:     result.RecordsTotal,
		RecordsMalformed: result.RecordsMalformed,
		RowsExported:     result.RowsExported,
		AssetsSkipped:    result.Assets.Skipped,
		AssetsSucceeded:  result.Assets.Succeeded,
		AssetsFailed:     result.Assets.Failed,
		ExportPath:       result.ExportPath,
	}
	if err := r.store.RecordRun(ctx, run, failures); err != nil {
		logger.Warn("record run history", logging.Error(err))
	}
}
