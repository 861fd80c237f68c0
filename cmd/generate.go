package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/flowcase-warehouse/internal/generator"
	"github.com/frahmantamala/flowcase-warehouse/pkg/logger"
)

var (
	genUsers int
	genSeed  int64
	genOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a fake quarterly report set without loading it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}

		logger.Init(cfg.Logging.Env)
		log := logger.LoggerWrapper()

		out := genOut
		if out == "" {
			out = cfg.Pipeline.ReportsDir
		}

		gen := generator.NewGenerator(generator.Config{
			Users: genUsers,
			Seed:  genSeed,
		}, log)

		dir, err := gen.Generate(out, time.Now().UTC())
		if err != nil {
			return err
		}
		log.Info("fake report set written", "dir", dir, "users", genUsers)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genUsers, "users", 500, "number of users to generate")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed, same seed writes identical files")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output base directory (defaults to pipeline.reports_dir)")
}
