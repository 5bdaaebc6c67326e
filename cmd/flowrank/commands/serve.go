package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/flowrank/internal/api"
	"github.com/wonny/flowrank/internal/api/handlers"
	"github.com/wonny/flowrank/internal/marketclock"
	"github.com/wonny/flowrank/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest rankings over HTTP",
	Long: `Runs an analysis for the current session, then serves the result:

  GET /health
  GET /api/rankings/bullish
  GET /api/rankings/bearish
  GET /api/rankings/breakdown

With --refresh, the analysis re-runs on the given cron schedule and the
served snapshot is swapped in place.

Example:
  flowrank serve
  flowrank serve --refresh "0 45 16 * * 1-5"`,
	RunE: runServe,
}

var serveRefresh string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveRefresh, "refresh", "", "cron schedule for re-running the analysis (6 fields, ET)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, p, err := loadRuntime(0)
	if err != nil {
		return err
	}

	clock, err := marketclock.New()
	if err != nil {
		return err
	}

	a := buildAnalyzer(cfg, log, p)
	rankingsHandler := handlers.NewRankingsHandler(log)

	job := &analysisJob{
		analyzer: a,
		clock:    clock,
		publish:  rankingsHandler.SetResult,
		schedule: serveRefresh,
	}

	// First snapshot before accepting traffic; a failed initial run is not
	// fatal, the API answers 503 until a run succeeds.
	if err := job.Run(context.Background()); err != nil {
		log.WithError(err).Warn("Initial analysis failed, serving without snapshot")
	}

	var sched *scheduler.Scheduler
	if serveRefresh != "" {
		sched = scheduler.New(log, clock.Now().Location())
		if err := sched.AddJob(job); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	router := api.NewRouter(rankingsHandler, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
