package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/insights-exporter/infrastructure/database/postgres"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

const exportConfigurationsTable = "export_configurations ec"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// O fuso efetivo é o da configuração, senão o do dono; vazio cai no padrão da aplicação
var exportConfigurationColumns = []string{
	"ec.id", "ec.name", "ec.owner_id",
	"COALESCE(NULLIF(ec.timezone, ''), u.timezone, '')",
	"ec.account_ids", "ec.spreadsheet_id", "ec.sheet_name", "ec.column_mapping",
	"ec.write_mode", "ec.date_range", "ec.auto_enabled",
	"COALESCE(ec.schedule_time, '')", "ec.schedule_days",
	"ec.created_at", "ec.updated_at",
}

type ExportConfigurationRepository interface {
	ListAutoConfigurations(ctx context.Context) ([]*domain.ExportConfiguration, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*domain.ExportConfiguration, error)
	GetByID(ctx context.Context, id string) (*domain.ExportConfiguration, error)
	Create(ctx context.Context, cfg *domain.ExportConfiguration) (*domain.ExportConfiguration, error)
}

type exportConfigurationRepository struct {
	conn postgres.Queryer
}

func NewExportConfigurationRepository(conn postgres.Queryer) ExportConfigurationRepository {
	return &exportConfigurationRepository{conn: conn}
}

func selectConfigurations() squirrel.SelectBuilder {
	return squirrel.
		Select(exportConfigurationColumns...).
		From(exportConfigurationsTable).
		Join("users u ON u.id = ec.owner_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *exportConfigurationRepository) ListAutoConfigurations(ctx context.Context) ([]*domain.ExportConfiguration, error) {
	return r.list(ctx, selectConfigurations().
		Where(squirrel.Eq{"ec.auto_enabled": true, "u.active": true}).
		OrderBy("ec.created_at ASC"))
}

func (r *exportConfigurationRepository) ListByOwner(ctx context.Context, ownerID int) ([]*domain.ExportConfiguration, error) {
	return r.list(ctx, selectConfigurations().
		Where(squirrel.Eq{"ec.owner_id": ownerID}).
		OrderBy("ec.name ASC"))
}

// GetByID retorna nil, nil quando a configuração não existe
func (r *exportConfigurationRepository) GetByID(ctx context.Context, id string) (*domain.ExportConfiguration, error) {
	query, args, err := selectConfigurations().Where(squirrel.Eq{"ec.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	cfg, err := scanConfiguration(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar configuração %s: %w", id, err)
	}

	return cfg, nil
}

func (r *exportConfigurationRepository) Create(ctx context.Context, cfg *domain.ExportConfiguration) (*domain.ExportConfiguration, error) {
	query, args, err := insertConfigurationQuery(cfg)
	if err != nil {
		return nil, err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, fmt.Errorf("erro de banco ao criar configuração: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao criar configuração: %w", err)
	}

	return cfg, nil
}

func insertConfigurationQuery(cfg *domain.ExportConfiguration) (string, []any, error) {
	if cfg.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return "", nil, fmt.Errorf("erro ao gerar id da configuração: %w", err)
		}
		cfg.ID = id
	}

	mapping, err := json.Marshal(cfg.ColumnMapping)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao serializar mapeamento de colunas: %w", err)
	}

	days := make(pq.Int64Array, 0, len(cfg.ScheduleDays))
	for _, d := range cfg.ScheduleDays {
		days = append(days, int64(d))
	}

	return squirrel.
		Insert("export_configurations").
		Columns(
			"id", "name", "owner_id", "timezone", "account_ids", "spreadsheet_id", "sheet_name",
			"column_mapping", "write_mode", "date_range", "auto_enabled", "schedule_time", "schedule_days",
		).
		Values(
			cfg.ID, cfg.Name, cfg.OwnerID, nullIfEmpty(cfg.Timezone), pq.Array(cfg.AccountIDs), cfg.SpreadsheetID, cfg.SheetName,
			string(mapping), string(cfg.WriteMode), cfg.DateRange, cfg.AutoEnabled, nullIfEmpty(cfg.ScheduleTime), days,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *exportConfigurationRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.ExportConfiguration, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar configurações: %w", err)
	}
	defer rows.Close()

	configurations := make([]*domain.ExportConfiguration, 0)
	for rows.Next() {
		cfg, err := scanConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao processar configuração: %w", err)
		}
		configurations = append(configurations, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return configurations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfiguration(row rowScanner) (*domain.ExportConfiguration, error) {
	var (
		cfg       domain.ExportConfiguration
		accounts  pq.StringArray
		days      pq.Int64Array
		mapping   []byte
		writeMode string
	)

	if err := row.Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.OwnerID,
		&cfg.Timezone,
		&accounts,
		&cfg.SpreadsheetID,
		&cfg.SheetName,
		&mapping,
		&writeMode,
		&cfg.DateRange,
		&cfg.AutoEnabled,
		&cfg.ScheduleTime,
		&days,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(mapping) > 0 {
		if err := json.Unmarshal(mapping, &cfg.ColumnMapping); err != nil {
			return nil, fmt.Errorf("mapeamento de colunas inválido na configuração %s: %w", cfg.ID, err)
		}
	}

	cfg.AccountIDs = []string(accounts)
	cfg.WriteMode = domain.WriteMode(writeMode)
	cfg.ScheduleDays = make([]int, 0, len(days))
	for _, d := range days {
		cfg.ScheduleDays = append(cfg.ScheduleDays, int(d))
	}

	return &cfg, nil
}
