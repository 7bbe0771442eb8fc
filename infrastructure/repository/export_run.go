package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/insights-exporter/infrastructure/database/postgres"
	"github.com/vfg2006/insights-exporter/internal/domain"
)

const exportRunsTable = "export_runs"

// RunFilter restringe a listagem do histórico de execuções
type RunFilter struct {
	UserID          int
	ConfigurationID string
	Limit           uint64
}

type ExportRunRepository interface {
	RecordRun(ctx context.Context, record *domain.ExportAuditRecord) error
	HasSuccessfulRun(ctx context.Context, configurationID string, trigger domain.RunTrigger, from, to time.Time) (bool, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*domain.ExportAuditRecord, error)
}

type exportRunRepository struct {
	conn postgres.Queryer
}

func NewExportRunRepository(conn postgres.Queryer) ExportRunRepository {
	return &exportRunRepository{conn: conn}
}

func (r *exportRunRepository) RecordRun(ctx context.Context, record *domain.ExportAuditRecord) error {
	query, args, err := recordRunQuery(record)
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar execução %s: %w", record.ID, err)
	}

	return nil
}

func recordRunQuery(record *domain.ExportAuditRecord) (string, []any, error) {
	return squirrel.
		Insert(exportRunsTable).
		Columns(
			"id", "configuration_id", "user_id", "trigger", "status",
			"accounts_processed", "rows_fetched", "rows_written",
			"date_start", "date_stop", "error_message", "started_at", "finished_at",
		).
		Values(
			record.ID, record.ConfigurationID, record.UserID, string(record.Trigger), string(record.Status),
			record.AccountsProcessed, record.RowsFetched, record.RowsWritten,
			nullIfEmpty(record.DateStart), nullIfEmpty(record.DateStop), record.ErrorMessage, record.StartedAt, record.FinishedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// HasSuccessfulRun considera started_at no intervalo semiaberto [from, to)
func (r *exportRunRepository) HasSuccessfulRun(ctx context.Context, configurationID string, trigger domain.RunTrigger, from, to time.Time) (bool, error) {
	query, args, err := successfulRunQuery(configurationID, trigger, from, to)
	if err != nil {
		return false, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var exists bool
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao consultar execuções da configuração %s: %w", configurationID, err)
	}

	return exists, nil
}

func successfulRunQuery(configurationID string, trigger domain.RunTrigger, from, to time.Time) (string, []any, error) {
	inner := squirrel.
		Select("1").
		From(exportRunsTable).
		Where(squirrel.Eq{
			"configuration_id": configurationID,
			"trigger":          string(trigger),
			"status":           string(domain.RunStatusSuccess),
		}).
		Where(squirrel.GtOrEq{"started_at": from.UTC()}).
		Where(squirrel.Lt{"started_at": to.UTC()})

	return squirrel.
		Select().
		Column(squirrel.Alias(squirrel.Expr("EXISTS(?)", inner), "found")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *exportRunRepository) ListRuns(ctx context.Context, filter RunFilter) ([]*domain.ExportAuditRecord, error) {
	query, args, err := listRunsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar execuções: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.ExportAuditRecord, 0)
	for rows.Next() {
		var (
			record          domain.ExportAuditRecord
			trigger, status string
		)
		if err := rows.Scan(
			&record.ID,
			&record.ConfigurationID,
			&record.UserID,
			&trigger,
			&status,
			&record.AccountsProcessed,
			&record.RowsFetched,
			&record.RowsWritten,
			&record.DateStart,
			&record.DateStop,
			&record.ErrorMessage,
			&record.StartedAt,
			&record.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar execução: %w", err)
		}
		record.Trigger = domain.RunTrigger(trigger)
		record.Status = domain.RunStatus(status)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return records, nil
}

func listRunsQuery(filter RunFilter) (string, []any, error) {
	limit := filter.Limit
	if limit == 0 || limit > 500 {
		limit = 100
	}

	builder := squirrel.
		Select(
			"id", "configuration_id", "user_id", "trigger", "status",
			"accounts_processed", "rows_fetched", "rows_written",
			"COALESCE(TO_CHAR(date_start, 'YYYY-MM-DD'), '')", "COALESCE(TO_CHAR(date_stop, 'YYYY-MM-DD'), '')", "error_message", "started_at", "finished_at",
		).
		From(exportRunsTable).
		OrderBy("started_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != 0 {
		builder = builder.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ConfigurationID != "" {
		builder = builder.Where(squirrel.Eq{"configuration_id": filter.ConfigurationID})
	}

	return builder.ToSql()
}
