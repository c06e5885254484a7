package main

import (
	"github.com/spf13/cobra"

	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/pubsub"
	"github.com/ritzau/socialgraph/pkg/watcher"
	"github.com/ritzau/socialgraph/pkg/web"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	addPipelineFlags(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port for the web server")
	serveCmd.Flags().Bool("watch", false, "Re-run the analysis when export files change")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis and serve results over HTTP",
	Long: `Run the full analysis, then serve the results as a JSON API for
visualization clients. With --watch, export directories are observed and
the analysis re-runs when their files change; status updates stream to
subscribers over SSE.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server := web.NewServer()

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}
	server.SetResult(result)
	publishReady(server, result.RunID, len(result.Usernames))

	if cfg.Watch {
		sources, err := cfg.UserSources()
		if err != nil {
			return err
		}
		dirs := make([]string, 0, len(sources))
		for _, src := range sources {
			dirs = append(dirs, src.Dir)
		}

		w, err := watcher.New(dirs, watcher.DefaultDebounce, func() {
			logging.Info("export data changed, re-running analysis")
			_ = server.PublishStatus(pubsub.AnalysisStatus{
				State:   "loading",
				Message: "export data changed, re-running analysis",
			})

			fresh, err := runPipeline(cfg)
			if err != nil {
				logging.Error("re-analysis failed", "error", err)
				_ = server.PublishStatus(pubsub.AnalysisStatus{
					State:   "failed",
					Message: err.Error(),
				})
				return
			}
			server.SetResult(fresh)
			publishReady(server, fresh.RunID, len(fresh.Usernames))
		})
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Close()
	}

	return server.Start(cfg.Port)
}

func publishReady(server *web.Server, runID string, users int) {
	_ = server.PublishStatus(pubsub.AnalysisStatus{
		State:       "ready",
		Message:     "analysis complete",
		RunID:       runID,
		UsersLoaded: users,
	})
}
