package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/insights-exporter/infrastructure/database/postgres"
	"github.com/vfg2006/insights-exporter/internal/domain"
)

const userIntegrationsTable = "user_integrations"

type IntegrationRepository interface {
	GetIntegration(ctx context.Context, userID int) (*domain.UserIntegration, error)
	SaveIntegration(ctx context.Context, integration *domain.UserIntegration) error
}

type integrationRepository struct {
	conn postgres.Queryer
}

func NewIntegrationRepository(conn postgres.Queryer) IntegrationRepository {
	return &integrationRepository{conn: conn}
}

// GetIntegration retorna nil, nil quando o usuário nunca conectou nenhuma credencial
func (r *integrationRepository) GetIntegration(ctx context.Context, userID int) (*domain.UserIntegration, error) {
	query, args, err := squirrel.
		Select("user_id", "COALESCE(meta_access_token, '')", "COALESCE(google_credentials_json, '')", "updated_at").
		From(userIntegrationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var integration domain.UserIntegration
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&integration.UserID,
		&integration.MetaAccessToken,
		&integration.GoogleCredentialsJSON,
		&integration.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar integrações do usuário %d: %w", userID, err)
	}

	return &integration, nil
}

// SaveIntegration faz upsert; campos vazios preservam o valor já salvo
func (r *integrationRepository) SaveIntegration(ctx context.Context, integration *domain.UserIntegration) error {
	query, args, err := squirrel.
		Insert(userIntegrationsTable).
		Columns("user_id", "meta_access_token", "google_credentials_json", "updated_at").
		Values(integration.UserID, nullIfEmpty(integration.MetaAccessToken), nullIfEmpty(integration.GoogleCredentialsJSON), squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			meta_access_token = COALESCE(EXCLUDED.meta_access_token, user_integrations.meta_access_token),
			google_credentials_json = COALESCE(EXCLUDED.google_credentials_json, user_integrations.google_credentials_json),
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar integrações do usuário %d: %w", integration.UserID, err)
	}

	return nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
