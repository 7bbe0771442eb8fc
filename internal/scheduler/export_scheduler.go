package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

// ErrPassInProgress é devolvido quando já existe uma rodada em andamento
var ErrPassInProgress = errors.New("rodada do agendador já em andamento")

type ConfigurationLister interface {
	ListAutoConfigurations(ctx context.Context) ([]*domain.ExportConfiguration, error)
}

// RunHistory responde se já houve execução bem-sucedida no intervalo [from, to)
type RunHistory interface {
	HasSuccessfulRun(ctx context.Context, configurationID string, trigger domain.RunTrigger, from, to time.Time) (bool, error)
}

type Exporter interface {
	RunExport(ctx context.Context, req *domain.ExportRunRequest) (*domain.ExportRunResult, error)
}

// ExportSchedulerConfig representa a configuração do agendador de exportações
type ExportSchedulerConfig struct {
	CronSchedule       string
	BatchSize          int
	MatchWindowMinutes int
	DefaultTimezone    string
	Enabled            bool
}

// ExportSchedulerService decide, a cada rodada, quais configurações automáticas
// devem rodar e executa as elegíveis em lotes paralelos
type ExportSchedulerService struct {
	scheduler           *gocron.Scheduler
	config              ExportSchedulerConfig
	configurations      ConfigurationLister
	history             RunHistory
	exporter            Exporter
	passRunning         bool
	passMutex           sync.Mutex
	lastPassStartedAt   time.Time
	lastPassCompletedAt time.Time
	lastSummary         *domain.PassSummary
}

func NewExportSchedulerService(
	configurations ConfigurationLister,
	history RunHistory,
	exporter Exporter,
	appConfig *config.Config,
) *ExportSchedulerService {
	schedulerConfig := ExportSchedulerConfig{
		CronSchedule:       appConfig.ExportScheduler.CronSchedule,
		BatchSize:          appConfig.ExportScheduler.BatchSize,
		MatchWindowMinutes: appConfig.ExportScheduler.MatchWindowMinutes,
		DefaultTimezone:    appConfig.ExportPipeline.DefaultTimezone,
		Enabled:            appConfig.ExportScheduler.Enabled,
	}
	if schedulerConfig.BatchSize <= 0 {
		schedulerConfig.BatchSize = 5
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":        schedulerConfig.CronSchedule,
		"batch_size":           schedulerConfig.BatchSize,
		"match_window_minutes": schedulerConfig.MatchWindowMinutes,
		"default_timezone":     schedulerConfig.DefaultTimezone,
		"enabled":              schedulerConfig.Enabled,
	}).Info("scheduler: configuração do agendador de exportações carregada")

	return &ExportSchedulerService{
		scheduler:      gocron.NewScheduler(time.UTC),
		config:         schedulerConfig,
		configurations: configurations,
		history:        history,
		exporter:       exporter,
	}
}

// Start agenda a rodada periódica; o horário de cada configuração é decidido na própria rodada
func (s *ExportSchedulerService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: exportações automáticas desabilitadas por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: iniciando agendador de exportações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunPassNow(ctx, false); err != nil && !errors.Is(err, ErrPassInProgress) {
			logrus.WithError(err).Error("scheduler: rodada falhou")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar rodada de exportações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: parando agendador de exportações")
		s.scheduler.Stop()
	}()

	return nil
}

// RunPassNow executa uma rodada agora, impedindo rodadas sobrepostas
func (s *ExportSchedulerService) RunPassNow(ctx context.Context, force bool) (*domain.PassSummary, error) {
	s.passMutex.Lock()
	if s.passRunning {
		s.passMutex.Unlock()
		logrus.Info("scheduler: rodada já em andamento, ignorando")
		return nil, ErrPassInProgress
	}
	s.passRunning = true
	s.lastPassStartedAt = time.Now()
	s.passMutex.Unlock()

	defer func() {
		s.passMutex.Lock()
		s.passRunning = false
		s.passMutex.Unlock()
	}()

	summary, err := s.RunScheduledPass(ctx, time.Now(), force)
	if err != nil {
		return nil, err
	}

	s.passMutex.Lock()
	s.lastPassCompletedAt = time.Now()
	s.lastSummary = summary
	s.passMutex.Unlock()

	return summary, nil
}

// TriggerManualPass dispara uma rodada em segundo plano
func (s *ExportSchedulerService) TriggerManualPass(force bool) {
	logrus.WithField("force", force).Info("scheduler: rodada manual solicitada")

	go func() {
		if _, err := s.RunPassNow(context.Background(), force); err != nil && !errors.Is(err, ErrPassInProgress) {
			logrus.WithError(err).Error("scheduler: rodada manual falhou")
		}
	}()
}

// RunScheduledPass avalia todas as configurações automáticas no instante now.
// Só devolve erro se não conseguir listar as configurações; falhas individuais
// vão para o resumo.
func (s *ExportSchedulerService) RunScheduledPass(ctx context.Context, now time.Time, force bool) (*domain.PassSummary, error) {
	startTime := time.Now()

	configurations, err := s.configurations.ListAutoConfigurations(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar configurações automáticas: %w", err)
	}

	summary := &domain.PassSummary{
		Evaluated: len(configurations),
		Errors:    []domain.ConfigurationError{},
		StartedAt: startTime.UTC(),
	}

	eligible := make([]*domain.ExportRunRequest, 0, len(configurations))

	for _, cfg := range configurations {
		req, ok, err := s.evaluate(ctx, cfg, now, force)
		if err != nil {
			summary.Errors = append(summary.Errors, configurationError(cfg, err))
			continue
		}
		if !ok {
			summary.Skipped++
			continue
		}
		eligible = append(eligible, req)
	}

	logrus.WithFields(logrus.Fields{
		"evaluated": summary.Evaluated,
		"eligible":  len(eligible),
		"skipped":   summary.Skipped,
		"force":     force,
	}).Debug("scheduler: configurações avaliadas")

	for _, outcome := range s.runBatches(ctx, eligible) {
		summary.Processed++
		if outcome.err != nil {
			summary.Errors = append(summary.Errors, domain.ConfigurationError{
				ConfigurationID: derefString(outcome.req.ConfigurationID),
				Name:            outcome.req.ConfigurationName,
				Message:         outcome.err.Error(),
			})
			continue
		}
		summary.Succeeded++
	}

	summary.Duration = time.Since(startTime).String()

	logrus.WithFields(logrus.Fields{
		"evaluated": summary.Evaluated,
		"processed": summary.Processed,
		"succeeded": summary.Succeeded,
		"skipped":   summary.Skipped,
		"errors":    len(summary.Errors),
		"duration":  summary.Duration,
	}).Info("scheduler: rodada concluída")

	return summary, nil
}

// evaluate aplica dia da semana, horário e deduplicação diária no fuso da configuração.
// force ignora as três regras.
func (s *ExportSchedulerService) evaluate(ctx context.Context, cfg *domain.ExportConfiguration, now time.Time, force bool) (*domain.ExportRunRequest, bool, error) {
	loc, err := utils.LoadLocation(cfg.Timezone, s.config.DefaultTimezone)
	if err != nil {
		return nil, false, fmt.Errorf("fuso horário %q inválido", cfg.Timezone)
	}

	req := cfg.ToRunRequest(domain.RunTriggerAutomatic, loc.String())
	if force {
		return req, true, nil
	}

	local := now.In(loc)
	logger := logrus.WithFields(logrus.Fields{
		"configuration_id": cfg.ID,
		"configuration":    cfg.Name,
		"local_time":       local.Format(time.RFC3339),
	})

	if len(cfg.ScheduleDays) > 0 && !slices.Contains(cfg.ScheduleDays, int(local.Weekday())) {
		logger.Debug("scheduler: fora dos dias agendados")
		return nil, false, nil
	}

	hour, minute, err := utils.ParseClock(cfg.ScheduleTime)
	if err != nil {
		return nil, false, err
	}
	if !s.timeMatches(local, hour, minute) {
		return nil, false, nil
	}

	from, to := utils.DayBounds(now, loc)
	alreadyRan, err := s.history.HasSuccessfulRun(ctx, cfg.ID, domain.RunTriggerAutomatic, from, to)
	if err != nil {
		return nil, false, fmt.Errorf("erro ao consultar histórico de execuções: %w", err)
	}
	if alreadyRan {
		logger.Debug("scheduler: já executada hoje, ignorando")
		return nil, false, nil
	}

	return req, true, nil
}

// timeMatches compara o horário local com o agendado. Sem janela configurada:
// mesma hora e minuto maior ou igual. Com janela: agendado <= local < agendado + janela.
func (s *ExportSchedulerService) timeMatches(local time.Time, hour, minute int) bool {
	if s.config.MatchWindowMinutes <= 0 {
		return local.Hour() == hour && local.Minute() >= minute
	}

	scheduled := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, local.Location())
	window := time.Duration(s.config.MatchWindowMinutes) * time.Minute
	return !local.Before(scheduled) && local.Before(scheduled.Add(window))
}

type runOutcome struct {
	req *domain.ExportRunRequest
	err error
}

// runBatches executa em lotes de BatchSize; cada lote roda todo em paralelo e o
// próximo só começa quando o anterior termina. Cada goroutine escreve só no seu slot.
func (s *ExportSchedulerService) runBatches(ctx context.Context, requests []*domain.ExportRunRequest) []runOutcome {
	outcomes := make([]runOutcome, len(requests))

	for start := 0; start < len(requests); start += s.config.BatchSize {
		end := min(start+s.config.BatchSize, len(requests))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				outcomes[i] = runOutcome{req: requests[i], err: s.runOne(ctx, requests[i])}
			}()
		}
		wg.Wait()
	}

	return outcomes
}

func (s *ExportSchedulerService) runOne(ctx context.Context, req *domain.ExportRunRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			logrus.WithFields(logrus.Fields{
				"configuration": req.ConfigurationName,
				"panic":         r,
			}).Error("scheduler: panic ao executar configuração")
		}
	}()

	result, err := s.exporter.RunExport(ctx, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"configuration": req.ConfigurationName,
			"error":         err.Error(),
		}).Warn("scheduler: configuração falhou")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"configuration": req.ConfigurationName,
		"run_id":        result.RunID,
		"rows_written":  result.RowsWritten,
	}).Info("scheduler: configuração executada")

	return nil
}

// GetStatus retorna o status atual do agendador
func (s *ExportSchedulerService) GetStatus() map[string]any {
	s.passMutex.Lock()
	defer s.passMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"batch_size":             s.config.BatchSize,
		"match_window_minutes":   s.config.MatchWindowMinutes,
		"default_timezone":       s.config.DefaultTimezone,
		"pass_running":           s.passRunning,
		"last_pass_started_at":   s.lastPassStartedAt,
		"last_pass_completed_at": s.lastPassCompletedAt,
		"last_summary":           s.lastSummary,
	}
}

func configurationError(cfg *domain.ExportConfiguration, err error) domain.ConfigurationError {
	logrus.WithFields(logrus.Fields{
		"configuration_id": cfg.ID,
		"configuration":    cfg.Name,
		"error":            err.Error(),
	}).Warn("scheduler: configuração não pôde ser avaliada")

	return domain.ConfigurationError{
		ConfigurationID: cfg.ID,
		Name:            cfg.Name,
		Message:         err.Error(),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
