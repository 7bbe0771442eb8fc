package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/insights-exporter/infrastructure/repository"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

func newRunsCommand(build containerBuilder) *cobra.Command {
	var filter repository.RunFilter

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Lista o histórico de execuções",
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer container.Close()

			runs, err := container.Runs.ListRuns(cmd.Context(), filter)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.ConfigurationID, "config", "", "Filtra por configuração")
	cmd.Flags().IntVar(&filter.UserID, "user", 0, "Filtra por usuário")
	cmd.Flags().Uint64Var(&filter.Limit, "limit", 50, "Quantidade máxima de execuções")

	return cmd
}
