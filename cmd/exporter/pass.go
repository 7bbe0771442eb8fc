package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

// newPassCommand executa uma rodada do agendador, para uso com um cron externo
func newPassCommand(build containerBuilder) *cobra.Command {
	var (
		force bool
		at    string
	)

	cmd := &cobra.Command{
		Use:   "pass",
		Short: "Executa uma rodada das exportações automáticas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := parseAt(at)
			if err != nil {
				return err
			}

			container, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer container.Close()

			summary, err := container.Scheduler.RunScheduledPass(cmd.Context(), now, force)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(summary))
			if len(summary.Errors) > 0 {
				return fmt.Errorf("%d configurações falharam", len(summary.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Ignora dia, horário e deduplicação")
	cmd.Flags().StringVar(&at, "at", "", "Instante da rodada em RFC3339 (padrão: agora)")

	return cmd
}

func parseAt(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at inválido %q: %w", value, err)
	}
	return at, nil
}
