package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-exporter/infrastructure/repository"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
	"github.com/vfg2006/insights-exporter/pkg/apiErrors"
	"github.com/vfg2006/insights-exporter/pkg/log"
	"github.com/vfg2006/insights-exporter/pkg/middleware"
)

type ExportRunner interface {
	RunExport(ctx context.Context, req *domain.ExportRunRequest) (*domain.ExportRunResult, error)
	ValidateConfiguration(cfg *domain.ExportConfiguration) error
}

type ConfigurationStore interface {
	ListByOwner(ctx context.Context, ownerID int) ([]*domain.ExportConfiguration, error)
	GetByID(ctx context.Context, id string) (*domain.ExportConfiguration, error)
	Create(ctx context.Context, cfg *domain.ExportConfiguration) (*domain.ExportConfiguration, error)
}

type RunLister interface {
	ListRuns(ctx context.Context, filter repository.RunFilter) ([]*domain.ExportAuditRecord, error)
}

type IntegrationStore interface {
	SaveIntegration(ctx context.Context, integration *domain.UserIntegration) error
}

// ExportServices agrupa as dependências das rotas de exportação
type ExportServices struct {
	Runner         ExportRunner
	Configurations ConfigurationStore
	Runs           RunLister
	Integrations   IntegrationStore
}

type IntegrationRequest struct {
	MetaAccessToken       string `json:"meta_access_token"`
	GoogleCredentialsJSON string `json:"google_credentials_json"`
}

// RunExport executa uma exportação manual para o usuário autenticado
func RunExport(services ExportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.ExportRunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.UserID = claims.UserID
		req.Trigger = domain.RunTriggerManual
		req.ConfigurationID = nil
		if req.Timezone == "" {
			req.Timezone = claims.UserTimezone
		}

		result, err := services.Runner.RunExport(r.Context(), &req)
		if err != nil {
			writeExportError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// ListConfigurations lista as configurações salvas do usuário autenticado
func ListConfigurations(services ExportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		configurations, err := services.Configurations.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao listar configurações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar configurações", nil)
			return
		}

		writeJSON(w, http.StatusOK, configurations)
	}
}

// CreateConfiguration salva uma configuração depois de validá-la como uma execução
func CreateConfiguration(services ExportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var cfg domain.ExportConfiguration
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		cfg.ID = ""
		cfg.OwnerID = claims.UserID
		if cfg.WriteMode == "" {
			cfg.WriteMode = domain.WriteModeAppend
		}

		if err := services.Runner.ValidateConfiguration(&cfg); err != nil {
			writeExportError(r.Context(), w, err)
			return
		}

		created, err := services.Configurations.Create(r.Context(), &cfg)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao criar configuração")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar configuração", nil)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// RunConfiguration executa manualmente uma configuração salva; execuções manuais não passam pela deduplicação
func RunConfiguration(services ExportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da configuração não fornecido", nil)
			return
		}

		cfg, err := services.Configurations.GetByID(r.Context(), id)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao buscar configuração")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar configuração", nil)
			return
		}
		if cfg == nil || (cfg.OwnerID != claims.UserID && claims.UserRoleID != middleware.RoleAdmin) {
			apiErrors.WriteError(w, apiErrors.ErrConfigurationNotFound, "Configuração não encontrada", nil)
			return
		}

		result, err := services.Runner.RunExport(r.Context(), cfg.ToRunRequest(domain.RunTriggerManual, cfg.Timezone))
		if err != nil {
			writeExportError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// ListRuns devolve o histórico de execuções; administradores podem filtrar por usuário
func ListRuns(services ExportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		filter := repository.RunFilter{
			UserID:          claims.UserID,
			ConfigurationID: query.Get("configuration_id"),
		}

		if limit := query.Get("limit"); limit != "" {
			parsed, err := strconv.ParseUint(limit, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido", nil)
				return
			}
			filter.Limit = parsed
		}

		if claims.UserRoleID == middleware.RoleAdmin {
			filter.UserID = 0
			if userID := query.Get("user_id"); userID != "" {
				parsed, err := strconv.Atoi(userID)
				if err != nil {
					apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
					return
				}
				filter.UserID = parsed
			}
		}

		runs, err := services.Runs.ListRuns(r.Context(), filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao listar execuções")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar execuções", nil)
			return
		}

		writeJSON(w, http.StatusOK, runs)
	}
}

// SaveIntegrations conecta as credenciais do Meta e do Google do usuário autenticado
func SaveIntegrations(services ExportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req IntegrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		if req.MetaAccessToken == "" && req.GoogleCredentialsJSON == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe ao menos uma credencial", nil)
			return
		}
		if req.GoogleCredentialsJSON != "" && !json.Valid([]byte(req.GoogleCredentialsJSON)) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Credenciais do Google não são um JSON válido", nil)
			return
		}

		err := services.Integrations.SaveIntegration(r.Context(), &domain.UserIntegration{
			UserID:                claims.UserID,
			MetaAccessToken:       req.MetaAccessToken,
			GoogleCredentialsJSON: req.GoogleCredentialsJSON,
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao salvar integrações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar integrações", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// writeExportError traduz os erros da exportação para os códigos da API
func writeExportError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := log.ForContext(ctx).WithError(err)

	var runErr *exporting.RunError
	switch {
	case errors.Is(err, exporting.ErrMissingSourceCredentials):
		apiErrors.WriteError(w, apiErrors.ErrMissingSourceCredentials, "Conecte uma conta do Meta antes de exportar", nil)
	case errors.Is(err, exporting.ErrMissingDestinationCredentials):
		apiErrors.WriteError(w, apiErrors.ErrMissingDestinationCredentials, "Conecte o Google Sheets antes de exportar", nil)
	case metaclient.IsTokenExpired(err):
		logger.Warn("export: token do Meta expirado")
		apiErrors.WriteError(w, apiErrors.ErrSourceTokenExpired, "Token do Meta expirado, reconecte a conta", nil)
	case errors.Is(err, exporting.ErrEmptyMapping), errors.Is(err, exporting.ErrInvalidRequest):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.As(err, &runErr):
		logger.Error("export: execução falhou")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, runErr.Err.Error(), map[string]any{
			"run_id": runErr.RunID,
			"stage":  runErr.Stage,
		})
	default:
		logger.Error("export: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao executar exportação", nil)
	}
}
