package exporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/log"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

type Service struct {
	cfg         *config.Config
	fetcher     InsightsFetcher
	credentials CredentialProvider
	audit       AuditSink
	now         func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio usado para resolver "hoje"
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(cfg *config.Config, fetcher InsightsFetcher, credentials CredentialProvider, audit AuditSink, opts ...Option) *Service {
	s := &Service{
		cfg:         cfg,
		fetcher:     fetcher,
		credentials: credentials,
		audit:       audit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// preparedRun é a requisição validada, pronta para ser executada
type preparedRun struct {
	accountIDs []string
	mode       domain.WriteMode
	trigger    domain.RunTrigger
	since      time.Time
	until      time.Time
	projector  *Projector
	dest       Destination
}

// RunExport executa uma exportação completa: busca, projeta, agrupa e escreve.
// Erros de pré-condição voltam sem auditoria; depois disso toda execução gera
// exatamente um registro de auditoria, de sucesso ou de erro.
func (s *Service) RunExport(ctx context.Context, req *domain.ExportRunRequest) (*domain.ExportRunResult, error) {
	run, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	token, err := s.credentials.GetSourceToken(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token do Meta: %w", err)
	}
	if token == "" {
		return nil, ErrMissingSourceCredentials
	}

	sheet, err := s.credentials.GetDestinationClient(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente do Google Sheets: %w", err)
	}
	if sheet == nil {
		return nil, ErrMissingDestinationCredentials
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}
	ctx = log.WithRunID(ctx, runID)

	record := &domain.ExportAuditRecord{
		ID:              runID,
		ConfigurationID: req.ConfigurationID,
		UserID:          req.UserID,
		Trigger:         run.trigger,
		DateStart:       run.since.Format(time.DateOnly),
		DateStop:        run.until.Format(time.DateOnly),
		StartedAt:       s.now().UTC(),
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":         runID,
		"user_id":        req.UserID,
		"configuration":  req.ConfigurationName,
		"trigger":        run.trigger,
		"accounts":       len(run.accountIDs),
		"date_start":     record.DateStart,
		"date_stop":      record.DateStop,
		"spreadsheet_id": run.dest.SpreadsheetID,
	})
	logger.Info("export: execução iniciada")

	runErr := s.execute(ctx, run, token, sheet, record)

	record.FinishedAt = s.now().UTC()
	if runErr != nil {
		record.Status = domain.RunStatusError
		message := runErr.Error()
		record.ErrorMessage = &message
	} else {
		record.Status = domain.RunStatusSuccess
	}

	// A auditoria é gravada mesmo se o chamador já cancelou o contexto
	if err := s.audit.RecordRun(context.WithoutCancel(ctx), record); err != nil {
		logger.WithError(err).Error("export: falha ao gravar registro de auditoria")
	}

	if runErr != nil {
		logger.WithError(runErr).Error("export: execução falhou")
		return nil, runErr
	}

	logger.WithFields(logrus.Fields{
		"rows_fetched": record.RowsFetched,
		"rows_written": record.RowsWritten,
		"duration":     record.FinishedAt.Sub(record.StartedAt).String(),
	}).Info("export: execução concluída")

	return &domain.ExportRunResult{
		RunID:             runID,
		AccountsProcessed: record.AccountsProcessed,
		RowsFetched:       record.RowsFetched,
		RowsWritten:       record.RowsWritten,
		DateStart:         record.DateStart,
		DateStop:          record.DateStop,
	}, nil
}

func (s *Service) execute(ctx context.Context, run *preparedRun, token string, sheet SheetWriter, record *domain.ExportAuditRecord) error {
	fetched, err := fetchAccounts(ctx, s.fetcher, run.accountIDs, token, run.since, run.until, run.projector.RequiredFields(), s.cfg.ExportPipeline.MaxConcurrentAccounts)
	if err != nil {
		return &RunError{RunID: record.ID, Stage: "busca de insights", Err: err}
	}
	record.AccountsProcessed = fetched.accountsProcessed
	record.RowsFetched = len(fetched.rows)

	rows := run.projector.ProjectAll(fetched.rows, s.cfg.ExportPipeline.FilterZeroRows)
	groups := BatchRanges(run.projector.Columns())

	written, err := NewWriter(sheet).Execute(ctx, groups, rows, run.mode, run.dest)
	if err != nil {
		return &RunError{RunID: record.ID, Stage: "escrita na planilha", Err: err}
	}
	record.RowsWritten = written

	return nil
}

func (s *Service) prepare(req *domain.ExportRunRequest) (*preparedRun, error) {
	if req == nil {
		return nil, invalidRequest("requisição vazia")
	}
	if req.UserID <= 0 {
		return nil, invalidRequest("usuário não informado")
	}
	if strings.TrimSpace(req.SpreadsheetID) == "" {
		return nil, invalidRequest("planilha de destino não informada")
	}
	if strings.TrimSpace(req.SheetName) == "" {
		return nil, invalidRequest("aba de destino não informada")
	}

	accountIDs := normalizeAccountIDs(req.AccountIDs)
	if len(accountIDs) == 0 {
		return nil, invalidRequest("nenhuma conta de anúncios informada")
	}

	mode := req.WriteMode
	if mode == "" {
		mode = domain.WriteModeAppend
	}
	if !mode.IsValid() {
		return nil, invalidRequest("modo de escrita desconhecido %q", req.WriteMode)
	}

	trigger := req.Trigger
	if trigger == "" {
		trigger = domain.RunTriggerManual
	}

	projector, err := NewProjector(req.ColumnMapping)
	if err != nil {
		return nil, err
	}

	loc, err := utils.LoadLocation(req.Timezone, s.cfg.ExportPipeline.DefaultTimezone)
	if err != nil {
		return nil, invalidRequest("fuso horário %q desconhecido", req.Timezone)
	}

	since, until, err := ResolveDateRange(req.DateRange, loc, s.now())
	if err != nil {
		return nil, err
	}

	return &preparedRun{
		accountIDs: accountIDs,
		mode:       mode,
		trigger:    trigger,
		since:      since,
		until:      until,
		projector:  projector,
		dest: Destination{
			SpreadsheetID: strings.TrimSpace(req.SpreadsheetID),
			SheetName:     req.SheetName,
		},
	}, nil
}

// normalizeAccountIDs remove o prefixo act_, espaços e repetições, mantendo a ordem
func normalizeAccountIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		id = strings.TrimPrefix(strings.TrimSpace(id), "act_")
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
