package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/flowcase-warehouse/internal"
	"github.com/frahmantamala/flowcase-warehouse/internal/flowcase"
	"github.com/frahmantamala/flowcase-warehouse/internal/generator"
	"github.com/frahmantamala/flowcase-warehouse/internal/pipeline"
	warehousePostgres "github.com/frahmantamala/flowcase-warehouse/internal/warehouse/postgres"
	"github.com/frahmantamala/flowcase-warehouse/pkg/logger"
)

var (
	etlGenerateFake bool
	etlDataFolder   string
	etlSkipRefresh  bool
	etlDataSource   string
	etlFakeUsers    int
	etlFakeSeed     int64
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Run the quarterly CV warehouse load",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}
		if etlDataSource != "" {
			cfg.Pipeline.DataSource = internal.DataSource(etlDataSource)
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		logger.Init(cfg.Logging.Env)
		log := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}

		kpiDB, err := sqlx.Connect("pgx", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect for view refresh: %w", err)
		}
		defer kpiDB.Close()

		var fetcher pipeline.ReportFetcher
		if cfg.Pipeline.DataSource == internal.DataSourceReal {
			fetcher = flowcase.NewClient(flowcase.Config{
				Subdomain:  cfg.Flowcase.Subdomain,
				APIToken:   cfg.Flowcase.APIToken,
				OfficeIDs:  cfg.Flowcase.OfficeIDs,
				LangParams: cfg.Flowcase.LangParams,
			}, log)
		}

		var gen pipeline.ReportGenerator
		if etlGenerateFake {
			gen = generator.NewGenerator(generator.Config{
				Users: etlFakeUsers,
				Seed:  etlFakeSeed,
			}, log)
		}

		svc := pipeline.NewService(
			cfg,
			warehousePostgres.NewLoader(db, log),
			fetcher,
			gen,
			kpiDB,
			log,
		)

		summary, err := svc.Run(cmd.Context(), pipeline.Options{
			GenerateFake: etlGenerateFake,
			DataFolder:   etlDataFolder,
			SkipRefresh:  etlSkipRefresh,
		})
		if err != nil {
			return err
		}

		log.Info("pipeline finished",
			"run_id", summary.RunID,
			"data_dir", summary.DataDir,
			"users", summary.Users,
			"cvs", summary.CVs,
			"rows_dropped", summary.Drops.Total(),
		)
		return nil
	},
}

func init() {
	etlCmd.Flags().BoolVar(&etlGenerateFake, "generate-fake", false, "regenerate the fake report set before loading (fake mode only)")
	etlCmd.Flags().StringVar(&etlDataFolder, "data-folder", "", "load a specific report folder instead of the latest quarter")
	etlCmd.Flags().BoolVar(&etlSkipRefresh, "skip-refresh", false, "skip the materialized view refresh after loading")
	etlCmd.Flags().StringVar(&etlDataSource, "data-source", "", "override the configured data source (fake or real)")
	etlCmd.Flags().IntVar(&etlFakeUsers, "fake-users", 500, "number of users to generate with --generate-fake")
	etlCmd.Flags().Int64Var(&etlFakeSeed, "fake-seed", 0, "random seed for --generate-fake")
}
