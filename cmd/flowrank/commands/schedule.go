package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/flowrank/internal/analyzer"
	"github.com/wonny/flowrank/internal/marketclock"
	"github.com/wonny/flowrank/internal/report"
	"github.com/wonny/flowrank/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the analysis on a recurring schedule",
	Long: `Registers a daily analysis job and keeps running until interrupted.
Each run prints the rankings and exports CSV, exactly like a manual
"flowrank analyze".

The default schedule fires weekdays at 16:45 ET, after the close.

Example:
  flowrank schedule
  flowrank schedule --cron "0 0 18 * * 1-5"`,
	RunE: runSchedule,
}

var scheduleCron string

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "0 45 16 * * 1-5", "cron schedule (6 fields, ET)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, p, err := loadRuntime(0)
	if err != nil {
		return err
	}

	clock, err := marketclock.New()
	if err != nil {
		return err
	}

	a := buildAnalyzer(cfg, log, p)

	job := &analysisJob{
		analyzer: a,
		clock:    clock,
		schedule: scheduleCron,
		publish: func(result *analyzer.Result) {
			RenderRankings(result.Rankings, p.TopN)
			RenderBreakdown(result.Breakdown, result.Profiles)
			if _, err := report.ExportCSV(result.Rankings, cfg.ExportDir, log); err != nil {
				log.WithError(err).Error("CSV export failed")
			}
		},
	}

	sched := scheduler.New(log, clock.Now().Location())
	if err := sched.AddJob(job); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	PrintInfo(fmt.Sprintf("Scheduler running, job %q on %q", job.Name(), job.Schedule()))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	return nil
}

// analysisJob adapts the analyzer to the scheduler's Job interface
type analysisJob struct {
	analyzer *analyzer.Analyzer
	clock    *marketclock.Clock
	schedule string
	publish  func(*analyzer.Result)
}

func (j *analysisJob) Name() string { return "flow-analysis" }

func (j *analysisJob) Schedule() string { return j.schedule }

func (j *analysisJob) Run(ctx context.Context) error {
	result, err := j.analyzer.Run(ctx, j.clock.AnalysisDate())
	if err != nil {
		return err
	}
	if j.publish != nil {
		j.publish(result)
	}
	return nil
}
