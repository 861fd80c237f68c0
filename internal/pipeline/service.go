// Package pipeline orchestrates one ETL run: acquire the report CSVs (vendor
// download or fake generation), transform, load, then refresh the search
// materialized view and log headline KPIs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/flowcase-warehouse/internal"
	"github.com/frahmantamala/flowcase-warehouse/internal/extract"
	"github.com/frahmantamala/flowcase-warehouse/internal/transform"
	"github.com/frahmantamala/flowcase-warehouse/internal/warehouse"
	"github.com/frahmantamala/flowcase-warehouse/pkg/logger"
)

// ReportFetcher downloads the full vendor report set into a folder.
type ReportFetcher interface {
	FetchAllReports(ctx context.Context, outputDir string) error
}

// ReportGenerator writes a fake report set under baseDir and returns the
// folder it created.
type ReportGenerator interface {
	Generate(baseDir string, now time.Time) (string, error)
}

type Options struct {
	// GenerateFake regenerates the fake report set before extracting
	// (fake mode only).
	GenerateFake bool
	// DataFolder overrides the configured reports directory.
	DataFolder string
	// SkipRefresh leaves the materialized view stale after the load.
	SkipRefresh bool
}

// Summary reports what one run did.
type Summary struct {
	RunID   string
	DataDir string
	Users   int
	CVs     int
	Drops   warehouse.DropCounts
}

type Service struct {
	cfg       *internal.Config
	loader    warehouse.Loader
	fetcher   ReportFetcher
	generator ReportGenerator
	kpiDB     *sqlx.DB
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires a pipeline run. fetcher is required for real mode,
// generator for --generate-fake, kpiDB may be nil to skip the post-load
// refresh and KPI block (tests do this).
func NewService(cfg *internal.Config, loader warehouse.Loader, fetcher ReportFetcher, generator ReportGenerator, kpiDB *sqlx.DB, log *slog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		loader:    loader,
		fetcher:   fetcher,
		generator: generator,
		kpiDB:     kpiDB,
		logger:    log,
		now:       time.Now,
	}
}

func (s *Service) Run(ctx context.Context, opts Options) (*Summary, error) {
	runID := uuid.NewString()
	ctx = logger.With(ctx, "run_id", runID)
	log := logger.From(ctx)
	log.Info("starting etl run", "data_source", s.cfg.Pipeline.DataSource)

	baseDir := s.cfg.Pipeline.ReportsDir
	if opts.DataFolder != "" {
		baseDir = opts.DataFolder
	}

	dataDir, tables, err := s.acquire(ctx, baseDir, opts)
	if err != nil {
		return nil, err
	}

	data, err := transform.Transform(tables)
	if err != nil {
		return nil, err
	}

	drops, err := s.loader.Load(ctx, data)
	if err != nil {
		return nil, internal.NewInternalError("warehouse load failed", err)
	}
	if drops.Total() > 0 {
		log.Warn("rows dropped during load", "total", drops.Total())
	}

	if !opts.SkipRefresh {
		s.refreshSearchView(ctx)
	}
	s.logKPIs(ctx)

	log.Info("etl run complete", "data_dir", dataDir, "users", len(data.Users), "cvs", len(data.CVs))
	return &Summary{
		RunID:   runID,
		DataDir: dataDir,
		Users:   len(data.Users),
		CVs:     len(data.CVs),
		Drops:   drops,
	}, nil
}

// acquire decides where the CSVs come from: real mode downloads into a fresh
// timestamped folder, fake mode optionally regenerates and then picks the
// newest quarterly folder.
func (s *Service) acquire(ctx context.Context, baseDir string, opts Options) (string, map[string]extract.Table, error) {
	log := logger.From(ctx)

	if s.cfg.Pipeline.DataSource == internal.DataSourceReal {
		if s.fetcher == nil {
			return "", nil, internal.NewValidationError(
				"real data source selected but no vendor client is configured",
				internal.ErrCodeConfigMissing,
			)
		}
		dataDir := filepath.Join(baseDir, s.now().UTC().Format("QREAL_20060102_150405"))
		log.Info("downloading vendor reports", "dir", dataDir)
		if err := s.fetcher.FetchAllReports(ctx, dataDir); err != nil {
			return "", nil, err
		}
		tables, err := extract.LoadReports(dataDir)
		if err != nil {
			return "", nil, err
		}
		return dataDir, tables, nil
	}

	if opts.GenerateFake {
		if s.generator == nil {
			return "", nil, internal.NewValidationError(
				"--generate-fake requires a report generator",
				internal.ErrCodeConfigMissing,
			)
		}
		outDir, err := s.generator.Generate(baseDir, s.now())
		if err != nil {
			return "", nil, err
		}
		log.Info("fake reports generated", "dir", outDir)
	}

	dataDir, err := extract.FindLatestQuarterFolder(baseDir)
	if err != nil {
		return "", nil, err
	}
	tables, err := extract.LoadReports(dataDir)
	if err != nil {
		return "", nil, err
	}
	return dataDir, tables, nil
}

// refreshSearchView is best effort: a missing view (fresh database, partial
// migration) downgrades to a warning rather than failing a successful load.
func (s *Service) refreshSearchView(ctx context.Context) {
	log := logger.From(ctx)
	if s.kpiDB == nil {
		log.Debug("no reporting connection; skipping materialized view refresh")
		return
	}
	log.Info("refreshing materialized view", "view", "cv_search_profile_mv")
	if _, err := s.kpiDB.ExecContext(ctx, "REFRESH MATERIALIZED VIEW cv_search_profile_mv"); err != nil {
		log.Warn("could not refresh cv_search_profile_mv", "error", err)
	}
}

type skillCount struct {
	Name  string `db:"name"`
	Count int    `db:"cnt"`
}

// logKPIs emits the headline numbers after a load. Also best effort; KPI
// failures never fail the run.
func (s *Service) logKPIs(ctx context.Context) {
	log := logger.From(ctx)
	if s.kpiDB == nil {
		return
	}

	var users, cvs int
	if err := s.kpiDB.GetContext(ctx, &users, "SELECT COUNT(*) FROM users"); err != nil {
		log.Warn("post-load KPI query failed", "error", err)
		return
	}
	if err := s.kpiDB.GetContext(ctx, &cvs, "SELECT COUNT(*) FROM cvs"); err != nil {
		log.Warn("post-load KPI query failed", "error", err)
		return
	}

	var topSkills []skillCount
	if err := s.kpiDB.SelectContext(ctx, &topSkills, `
		SELECT dt.name, COUNT(*) AS cnt
		FROM cv_technology ct
		JOIN dim_technology dt ON dt.technology_id = ct.technology_id
		GROUP BY dt.name
		ORDER BY cnt DESC
		LIMIT 5`); err != nil {
		log.Warn("post-load KPI query failed", "error", err)
		return
	}
	skills := make([]string, 0, len(topSkills))
	for _, sk := range topSkills {
		skills = append(skills, fmt.Sprintf("%s=%d", sk.Name, sk.Count))
	}

	var scAvailable int
	if err := s.kpiDB.GetContext(ctx, &scAvailable, `
		SELECT COUNT(*) FROM cv_search_profile_mv
		WHERE clearance = 'SC' AND latest_percent_available >= 50`); err != nil {
		log.Warn("post-load KPI query failed", "error", err)
		scAvailable = -1
	}

	var avgAvailability *float64
	if err := s.kpiDB.GetContext(ctx, &avgAvailability, "SELECT AVG(percent_available) FROM user_availability"); err != nil {
		log.Warn("post-load KPI query failed", "error", err)
	}
	avg := 0.0
	if avgAvailability != nil {
		avg = *avgAvailability
	}

	log.Info("post-load KPIs",
		"users", users,
		"cvs", cvs,
		"top_skills", skills,
		"sc_cleared_half_available", scAvailable,
		"avg_availability", fmt.Sprintf("%.2f", avg))
}
