package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/insights-exporter/internal/app"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("exporter: comando falhou")
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "exporter",
		Short:         "Exporta insights do Meta Ads para o Google Sheets",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Nível de log (sobrescreve LOG_LEVEL)")

	build := func(ctx context.Context) (*app.Container, error) {
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, err
		}
		if logLevel != "" {
			cfg.App.LogLevel = logLevel
		}
		log.Setup(cfg.App.LogLevel)

		return app.Build(ctx, cfg)
	}

	cmd.AddCommand(newPassCommand(build))
	cmd.AddCommand(newRunCommand(build))
	cmd.AddCommand(newRunsCommand(build))

	return cmd
}

type containerBuilder func(ctx context.Context) (*app.Container, error)
