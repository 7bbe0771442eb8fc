package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/scheduler"
	"github.com/vfg2006/insights-exporter/pkg/apiErrors"
	"github.com/vfg2006/insights-exporter/pkg/log"
)

// PassRunner é o agendador de exportações automáticas
type PassRunner interface {
	RunPassNow(ctx context.Context, force bool) (*domain.PassSummary, error)
	TriggerManualPass(force bool)
	GetStatus() map[string]any
}

// RunExportPass executa uma rodada do agendador. Com async=true a rodada vai
// para segundo plano e a resposta é 202; sem ele o resumo volta no corpo.
func RunExportPass(passRunner PassRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		force, err := parseBoolParam(r, "force")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro force inválido", nil)
			return
		}
		async, err := parseBoolParam(r, "async")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro async inválido", nil)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"force": force,
			"async": async,
		}).Info("scheduler: rodada solicitada via API")

		if async {
			passRunner.TriggerManualPass(force)
			writeJSON(w, http.StatusAccepted, map[string]any{
				"message": "Rodada de exportações iniciada",
				"force":   force,
			})
			return
		}

		summary, err := passRunner.RunPassNow(r.Context(), force)
		if err != nil {
			if errors.Is(err, scheduler.ErrPassInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrCommunication, "Já existe uma rodada em andamento", nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("scheduler: rodada via API falhou")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao executar rodada de exportações", nil)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// GetCronStatus retorna o status do agendador de exportações
func GetCronStatus(passRunner PassRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"export": passRunner.GetStatus(),
		})
	}
}

func parseBoolParam(r *http.Request, name string) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
