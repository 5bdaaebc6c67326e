package commands

import (
	"fmt"

	"github.com/wonny/flowrank/internal/analyzer"
	"github.com/wonny/flowrank/internal/external/uw"
	"github.com/wonny/flowrank/internal/flow"
	"github.com/wonny/flowrank/internal/params"
	"github.com/wonny/flowrank/internal/ranking"
	"github.com/wonny/flowrank/internal/report"
	"github.com/wonny/flowrank/internal/universe"
	"github.com/wonny/flowrank/pkg/config"
	"github.com/wonny/flowrank/pkg/logger"
)

// loadRuntime loads config, logger and parameters for a command run
func loadRuntime(topNOverride int) (*config.Config, *logger.Logger, *params.Params, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	p := params.Defaults()
	if paramsFile != "" {
		p, err = params.Load(paramsFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load parameters: %w", err)
		}
		log.WithField("file", paramsFile).Info("Loaded analysis parameters")
	}
	if topNOverride > 0 {
		p.TopN = topNOverride
	}

	return cfg, log, p, nil
}

// buildAnalyzer wires the pipeline stages
func buildAnalyzer(cfg *config.Config, log *logger.Logger, p *params.Params) *analyzer.Analyzer {
	client := uw.NewClient(cfg.UnusualWhales, log)
	classifier := universe.NewClassifier(p.CapBuckets, log)
	weigher := flow.NewWeigher(p.DTEWeights, p.FarWeight)
	aggregator := flow.NewAggregator(weigher, log)
	engine := ranking.NewEngine(p.TopN, log)
	assembler := report.NewAssembler(log)

	return analyzer.New(client, classifier, aggregator, engine, assembler, log)
}
