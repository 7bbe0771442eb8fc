package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-exporter/infrastructure/repository"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/scheduler"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
	"github.com/vfg2006/insights-exporter/pkg/apiErrors"
	"github.com/vfg2006/insights-exporter/pkg/middleware"
)

type stubRunner struct {
	received *domain.ExportRunRequest
	result   *domain.ExportRunResult
	err      error
}

func (s *stubRunner) RunExport(_ context.Context, req *domain.ExportRunRequest) (*domain.ExportRunResult, error) {
	s.received = req
	return s.result, s.err
}

func (s *stubRunner) ValidateConfiguration(_ *domain.ExportConfiguration) error {
	return s.err
}

type stubConfigurations struct {
	byID map[string]*domain.ExportConfiguration
}

func (s *stubConfigurations) ListByOwner(_ context.Context, ownerID int) ([]*domain.ExportConfiguration, error) {
	out := []*domain.ExportConfiguration{}
	for _, cfg := range s.byID {
		if cfg.OwnerID == ownerID {
			out = append(out, cfg)
		}
	}
	return out, nil
}

func (s *stubConfigurations) GetByID(_ context.Context, id string) (*domain.ExportConfiguration, error) {
	return s.byID[id], nil
}

func (s *stubConfigurations) Create(_ context.Context, cfg *domain.ExportConfiguration) (*domain.ExportConfiguration, error) {
	cfg.ID = "novo"
	return cfg, nil
}

type stubRuns struct {
	filter repository.RunFilter
}

func (s *stubRuns) ListRuns(_ context.Context, filter repository.RunFilter) ([]*domain.ExportAuditRecord, error) {
	s.filter = filter
	return []*domain.ExportAuditRecord{}, nil
}

type stubPassRunner struct {
	summary   *domain.PassSummary
	err       error
	triggered bool
	force     bool
}

func (s *stubPassRunner) RunPassNow(_ context.Context, force bool) (*domain.PassSummary, error) {
	s.force = force
	return s.summary, s.err
}

func (s *stubPassRunner) TriggerManualPass(force bool) {
	s.triggered = true
	s.force = force
}

func (s *stubPassRunner) GetStatus() map[string]any {
	return map[string]any{"enabled": true}
}

func withClaims(r *http.Request, userID, roleID int) *http.Request {
	claims := &domain.Claims{UserID: userID, UserRoleID: roleID, UserTimezone: "Asia/Tokyo"}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestRunExport(t *testing.T) {
	t.Run("Sem usuário autenticado", func(t *testing.T) {
		runner := &stubRunner{}
		req := httptest.NewRequest(http.MethodPost, "/v1/exports/run", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		RunExport(ExportServices{Runner: runner})(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, runner.received)
	})

	t.Run("Usa o usuário do token e força gatilho manual", func(t *testing.T) {
		runner := &stubRunner{result: &domain.ExportRunResult{RunID: "run-1", RowsWritten: 4}}
		body := `{"user_id": 99, "trigger": "automatic", "account_ids": ["111"], "date_range": "yesterday"}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/exports/run", strings.NewReader(body)), 7, middleware.RoleClient)
		rec := httptest.NewRecorder()

		RunExport(ExportServices{Runner: runner})(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 7, runner.received.UserID)
		assert.Equal(t, domain.RunTriggerManual, runner.received.Trigger)
		assert.Equal(t, "Asia/Tokyo", runner.received.Timezone)
		assert.Contains(t, rec.Body.String(), `"run_id":"run-1"`)
	})
}

func TestWriteExportError(t *testing.T) {
	expired := &metaclient.APIError{
		StatusCode: http.StatusBadRequest,
		Response:   &metadomain.ErrorResponse{Error: metadomain.ErrorDetails{Code: 190, Message: "Session has expired"}},
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "Sem credencial de origem", err: exporting.ErrMissingSourceCredentials, wantStatus: http.StatusPreconditionFailed, wantCode: apiErrors.ErrMissingSourceCredentials},
		{name: "Sem credencial de destino", err: exporting.ErrMissingDestinationCredentials, wantStatus: http.StatusPreconditionFailed, wantCode: apiErrors.ErrMissingDestinationCredentials},
		{name: "Requisição inválida", err: fmt.Errorf("%w: aba vazia", exporting.ErrInvalidRequest), wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidRequest},
		{name: "Mapeamento vazio", err: exporting.ErrEmptyMapping, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidRequest},
		{
			name:       "Token do Meta expirado dentro da execução",
			err:        &exporting.RunError{RunID: "run-1", Stage: "busca de insights", Err: fmt.Errorf("conta 111: %w", expired)},
			wantStatus: http.StatusPreconditionFailed,
			wantCode:   apiErrors.ErrSourceTokenExpired,
		},
		{
			name:       "Falha na planilha",
			err:        &exporting.RunError{RunID: "run-2", Stage: "escrita na planilha", Err: errors.New("quota")},
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrExternalService,
		},
		{name: "Erro desconhecido", err: errors.New("inesperado"), wantStatus: http.StatusInternalServerError, wantCode: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeExportError(context.Background(), rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestRunConfiguration(t *testing.T) {
	configurations := &stubConfigurations{byID: map[string]*domain.ExportConfiguration{
		"cfg-1": {ID: "cfg-1", Name: "Diário", OwnerID: 7, Timezone: "America/Sao_Paulo"},
	}}

	tests := []struct {
		name       string
		userID     int
		roleID     int
		id         string
		wantStatus int
	}{
		{name: "Dono executa", userID: 7, roleID: middleware.RoleClient, id: "cfg-1", wantStatus: http.StatusOK},
		{name: "Administrador executa de outro usuário", userID: 1, roleID: middleware.RoleAdmin, id: "cfg-1", wantStatus: http.StatusOK},
		{name: "Outro usuário não enxerga", userID: 8, roleID: middleware.RoleClient, id: "cfg-1", wantStatus: http.StatusNotFound},
		{name: "Configuração inexistente", userID: 7, roleID: middleware.RoleClient, id: "nada", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{result: &domain.ExportRunResult{RunID: "run-1"}}
			req := httptest.NewRequest(http.MethodPost, "/v1/exports/configurations/"+tt.id+"/run", nil)
			req = req.WithContext(context.WithValue(req.Context(), httprouter.ParamsKey, httprouter.Params{{Key: "id", Value: tt.id}}))
			req = withClaims(req, tt.userID, tt.roleID)
			rec := httptest.NewRecorder()

			RunConfiguration(ExportServices{Runner: runner, Configurations: configurations})(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, domain.RunTriggerManual, runner.received.Trigger)
				assert.Equal(t, "cfg-1", *runner.received.ConfigurationID)
				assert.Equal(t, 7, runner.received.UserID)
			}
		})
	}
}

func TestListRuns_FiltroPorPapel(t *testing.T) {
	tests := []struct {
		name       string
		roleID     int
		query      string
		wantUserID int
	}{
		{name: "Cliente só vê as próprias execuções", roleID: middleware.RoleClient, query: "?user_id=99", wantUserID: 7},
		{name: "Administrador sem filtro vê todas", roleID: middleware.RoleAdmin, wantUserID: 0},
		{name: "Administrador filtra por usuário", roleID: middleware.RoleAdmin, query: "?user_id=99", wantUserID: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := &stubRuns{}
			req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/exports/runs"+tt.query, nil), 7, tt.roleID)
			rec := httptest.NewRecorder()

			ListRuns(ExportServices{Runs: runs})(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantUserID, runs.filter.UserID)
		})
	}
}

func TestRunExportPass(t *testing.T) {
	t.Run("Rodada síncrona devolve o resumo", func(t *testing.T) {
		runner := &stubPassRunner{summary: &domain.PassSummary{Evaluated: 3, Processed: 1, Succeeded: 1}}
		rec := httptest.NewRecorder()

		RunExportPass(runner)(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/export/run?force=true", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, runner.force)
		assert.Contains(t, rec.Body.String(), `"evaluated":3`)
	})

	t.Run("Rodada assíncrona", func(t *testing.T) {
		runner := &stubPassRunner{}
		rec := httptest.NewRecorder()

		RunExportPass(runner)(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/export/run?async=true", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.True(t, runner.triggered)
		assert.False(t, runner.force)
	})

	t.Run("Rodada em andamento", func(t *testing.T) {
		runner := &stubPassRunner{err: scheduler.ErrPassInProgress}
		rec := httptest.NewRecorder()

		RunExportPass(runner)(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/export/run", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Parâmetro force inválido", func(t *testing.T) {
		rec := httptest.NewRecorder()

		RunExportPass(&stubPassRunner{})(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/export/run?force=talvez", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
