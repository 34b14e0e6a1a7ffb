// Command gridctl merender snapshot timetable / denah ujian dari file YAML atau JSON
// tanpa server dan tanpa database.
//
//	gridctl timetable -f snapshot.yaml
//	gridctl seating -f exam.json --strict
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"schoolgrid_backend/internals/configs"
	"schoolgrid_backend/internals/features/school/grids/dto"
	"schoolgrid_backend/internals/features/school/grids/service"
)

// errFindings: --strict dan grid punya findings → exit code 2.
var errFindings = errors.New("grid has findings")

type cli struct {
	logger   *zap.Logger
	validate *validator.Validate
	file     string
	strict   bool
	verbose  bool
}

func main() {
	err := newRootCmd(nil).Execute()
	switch {
	case err == nil:
	case errors.Is(err, errFindings):
		os.Exit(2)
	default:
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	c := &cli{logger: logger, validate: validator.New(validator.WithRequiredStructEnabled())}

	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Render timetable / exam seating grids from a snapshot file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			config.Encoding = "console"
			config.OutputPaths = []string{"stderr"}
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			c.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&c.file, "file", "f", "", "snapshot file (YAML or JSON)")
	root.PersistentFlags().BoolVar(&c.strict, "strict", false, "exit non-zero when the grid has findings")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "timetable",
			Short: "Render a (day, period) timetable",
			Args:  cobra.NoArgs,
			RunE:  c.runTimetable,
		},
		&cobra.Command{
			Use:   "seating",
			Short: "Render a (room, row, column) exam seating plan",
			Args:  cobra.NoArgs,
			RunE:  c.runSeating,
		},
	)
	return root
}

func (c *cli) runTimetable(cmd *cobra.Command, _ []string) error {
	var req dto.RenderTimetableRequest
	if err := c.load(&req); err != nil {
		return err
	}

	defaults, err := configs.LoadGridDefaults(os.Getenv("GRID_CONFIG_FILE"))
	if err != nil {
		return err
	}
	if req.WorkingDays == 0 {
		req.WorkingDays = defaults.WorkingDays
	}
	if req.PeriodsPerDay == 0 {
		req.PeriodsPerDay = defaults.PeriodsPerDay
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	grid, err := service.New(nil, defaults).RenderTimetable(req)
	if err != nil {
		return err
	}
	c.logger.Info("timetable rendered",
		zap.Int("working_days", grid.WorkingDays),
		zap.Int("periods_per_day", grid.PeriodsPerDay),
		zap.Int("records", len(req.Slots)))
	return c.finish(cmd.OutOrStdout(), grid, grid.Findings)
}

func (c *cli) runSeating(cmd *cobra.Command, _ []string) error {
	var req dto.RenderSeatingRequest
	if err := c.load(&req); err != nil {
		return err
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	grid, err := service.New(nil, configs.DefaultGrid()).RenderSeating(req)
	if err != nil {
		return err
	}
	c.logger.Info("seating rendered",
		zap.String("exam_type", grid.ExamType),
		zap.Int("rooms", len(grid.Rooms)),
		zap.Int("records", len(req.Seats)))
	return c.finish(cmd.OutOrStdout(), grid, grid.Findings)
}

// load: JSON adalah subset YAML, jadi satu decoder cukup.
func (c *cli) load(out any) error {
	if c.file == "" {
		return errors.New("--file is required")
	}
	raw, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", c.file, err)
	}
	c.logger.Debug("snapshot loaded", zap.String("file", c.file), zap.Int("bytes", len(raw)))
	return nil
}

func (c *cli) finish(w io.Writer, grid any, findings dto.FindingsResponse) error {
	for _, r := range findings.Rejected {
		c.logger.Warn("record rejected", zap.Int("index", r.Index), zap.String("field", r.Field), zap.String("reason", r.Reason))
	}
	for _, d := range findings.Duplicates {
		c.logger.Warn("duplicate assignment", zap.String("detail", d.Message))
	}
	for _, o := range findings.OverCapacity {
		c.logger.Warn("over capacity", zap.String("detail", o.Message))
	}

	out, err := sonic.ConfigStd.MarshalIndent(grid, "", "  ")
	if err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return err
	}

	if c.strict && !findings.Empty() {
		c.logger.Error("strict mode: grid has findings",
			zap.Int("rejected", len(findings.Rejected)),
			zap.Int("duplicates", len(findings.Duplicates)),
			zap.Int("over_capacity", len(findings.OverCapacity)))
		return errFindings
	}
	return nil
}
