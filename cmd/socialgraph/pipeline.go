package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ritzau/socialgraph/pkg/analyzer"
	"github.com/ritzau/socialgraph/pkg/config"
	"github.com/ritzau/socialgraph/pkg/ingest"
	"github.com/ritzau/socialgraph/pkg/logging"
)

// loadConfig loads layered configuration for a command and applies the
// configured log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.SetLevel(cfg.LogLevel())
	return cfg, nil
}

// runPipeline loads every configured user, builds the combined graph,
// and returns the full analysis snapshot. Individual user failures are
// counted, not fatal; fewer than two loadable users is.
func runPipeline(cfg *config.Config) (*analyzer.Result, error) {
	sources, err := cfg.UserSources()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no users configured; pass --users name=dir or set users in socialgraph.toml")
	}

	runID := uuid.NewString()
	logging.Info("starting analysis", "run", runID, "users", len(sources))

	multi := analyzer.NewMultiAnalyzer()
	loaded := 0
	for _, src := range sources {
		if multi.AddUser(src.Name, ingest.Dir(src.Dir)) {
			loaded++
		}
	}
	logging.Info("user data loaded", "loaded", loaded, "configured", len(sources))

	if loaded < analyzer.MinUsersForAnalysis {
		return nil, fmt.Errorf("need at least %d successfully loaded users, got %d", analyzer.MinUsersForAnalysis, loaded)
	}

	return multi.Snapshot(runID, cfg.MinCommon), nil
}
