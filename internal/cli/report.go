package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kassa/internal/config"
	"kassa/internal/moysklad"
	"kassa/internal/render"
	"kassa/internal/render/excel"
	"kassa/internal/render/sheets"
	"kassa/internal/report"
)

const dateLayout = "2006-01-02"

func createReportCmd() *cobra.Command {
	var r reportRunner

	c := &cobra.Command{
		Use:   "report",
		Short: "generate a cash flow report",
		Long:  `Fetch cash-in and cash-out documents for the given date window and render the two-sheet report.`,

		Args: cobra.NoArgs,
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type reportRunner struct {
	from, to string
	output   string
	backend  string
}

func (r *reportRunner) setupFlags(c *cobra.Command) {
	c.Flags().StringVar(&r.from, "from", "", "start date (YYYY-MM-DD, default 2022-01-01)")
	c.Flags().StringVar(&r.to, "to", "", "end date (YYYY-MM-DD, default today)")
	c.Flags().StringVarP(&r.output, "output", "o", "", "output path for the xlsx workbook")
	c.Flags().StringVar(&r.backend, "backend", "", "report backend (excel or sheets)")
}

func (r *reportRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *reportRunner) execute(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg := config.Load()
	if r.output != "" {
		cfg.OutputPath = r.output
	}
	if r.backend != "" {
		cfg.Backend = r.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	from, to, err := window(r.from, r.to)
	if err != nil {
		return err
	}

	client := moysklad.NewClient(cfg.BaseURL, cfg.Username, cfg.Password)
	generator := report.NewGenerator(client, cfg.Normalizer())

	renderer, err := buildRenderer(ctx, cfg)
	if err != nil {
		return err
	}

	rep, err := generator.Generate(ctx, from, to)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	if err := renderer.Render(ctx, rep); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if cfg.Backend == config.BackendExcel {
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", cfg.OutputPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "report written to spreadsheet %s\n", cfg.SpreadsheetID)
	}
	return nil
}

// window parses the date flags, defaulting to 2022-01-01..today.
func window(fromFlag, toFlag string) (time.Time, time.Time, error) {
	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Now().UTC().Truncate(24 * time.Hour)

	var err error
	if fromFlag != "" {
		if from, err = time.Parse(dateLayout, fromFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q", fromFlag)
		}
	}
	if toFlag != "" {
		if to, err = time.Parse(dateLayout, toFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q", toFlag)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %s precedes from date %s", toFlag, fromFlag)
	}
	return from, to, nil
}

// buildRenderer picks the render backend from the configuration.
func buildRenderer(ctx context.Context, cfg *config.Config) (render.Renderer, error) {
	switch cfg.Backend {
	case config.BackendSheets:
		return sheets.NewClient(ctx, cfg.SpreadsheetID)
	default:
		return excel.Writer{Path: cfg.OutputPath}, nil
	}
}
