package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
	"gopkg.in/yaml.v3"
)

// requestFile é o formato do arquivo aceito por "run --file"
type requestFile struct {
	UserID        int                  `yaml:"user_id"`
	AccountIDs    []string             `yaml:"account_ids"`
	DateRange     string               `yaml:"date_range"`
	SpreadsheetID string               `yaml:"spreadsheet_id"`
	SheetName     string               `yaml:"sheet_name"`
	ColumnMapping domain.ColumnMapping `yaml:"column_mapping"`
	WriteMode     domain.WriteMode     `yaml:"write_mode"`
	Timezone      string               `yaml:"timezone"`
}

func newRunCommand(build containerBuilder) *cobra.Command {
	var (
		configurationID string
		file            string
		userID          int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Executa uma exportação manual a partir de uma configuração salva ou de um arquivo YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (configurationID == "") == (file == "") {
				return errors.New("informe exatamente um entre --config e --file")
			}

			var fileReq *domain.ExportRunRequest
			if file != "" {
				req, err := loadRequestFile(file)
				if err != nil {
					return err
				}
				if userID != 0 {
					req.UserID = userID
				}
				fileReq = req
			}

			container, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer container.Close()

			req := fileReq
			if configurationID != "" {
				cfg, err := container.Configurations.GetByID(cmd.Context(), configurationID)
				if err != nil {
					return err
				}
				if cfg == nil {
					return fmt.Errorf("configuração %s não encontrada", configurationID)
				}
				req = cfg.ToRunRequest(domain.RunTriggerManual, cfg.Timezone)
			}

			result, err := container.Exporter.RunExport(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&configurationID, "config", "", "ID da configuração salva")
	cmd.Flags().StringVar(&file, "file", "", "Arquivo YAML com a requisição de exportação")
	cmd.Flags().IntVar(&userID, "user", 0, "Usuário dono das credenciais (sobrescreve user_id do arquivo)")

	return cmd
}

func loadRequestFile(path string) (*domain.ExportRunRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	var parsed requestFile
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("erro ao interpretar %s: %w", path, err)
	}

	return &domain.ExportRunRequest{
		UserID:        parsed.UserID,
		AccountIDs:    parsed.AccountIDs,
		DateRange:     parsed.DateRange,
		SpreadsheetID: parsed.SpreadsheetID,
		SheetName:     parsed.SheetName,
		ColumnMapping: parsed.ColumnMapping,
		WriteMode:     parsed.WriteMode,
		Timezone:      parsed.Timezone,
		Trigger:       domain.RunTriggerManual,
	}, nil
}
