package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sandrolain/goroots/pkg/config"
	"github.com/sandrolain/goroots/pkg/server"
)

type serveEnv struct {
	configPath string
	listen     string
}

// getServeCmd returns the definition of the serve command.
func getServeCmd() *cobra.Command {
	env := &serveEnv{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solvers over HTTP",
		Long: `
Runs the HTTP API until interrupted. Without --config the built-in defaults
are used; --listen overrides the configured address.
`,
		Args: cobra.NoArgs,
		RunE: env.runServeCmd,
	}
	cmd.Flags().StringVar(&env.configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringVar(&env.listen, "listen", "", "Address to listen on, e.g. ':8080'")
	return cmd
}

func (s *serveEnv) runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	if s.listen != "" {
		cfg.Listen = s.listen
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, server.WithLogger(logger), server.WithRegistry(reg))
	return srv.ListenAndServe(ctx)
}
