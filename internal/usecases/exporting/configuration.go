package exporting

import (
	"strings"

	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

// ValidateConfiguration aplica à configuração as mesmas regras de uma execução
// manual e, quando o agendamento está ativo, valida horário e dias da semana
func (s *Service) ValidateConfiguration(cfg *domain.ExportConfiguration) error {
	if cfg == nil {
		return invalidRequest("configuração vazia")
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return invalidRequest("nome da configuração não informado")
	}

	if _, err := s.prepare(cfg.ToRunRequest(domain.RunTriggerManual, cfg.Timezone)); err != nil {
		return err
	}

	for _, day := range cfg.ScheduleDays {
		if day < 0 || day > 6 {
			return invalidRequest("dia da semana %d fora do intervalo 0-6", day)
		}
	}

	if !cfg.AutoEnabled {
		return nil
	}
	if _, _, err := utils.ParseClock(cfg.ScheduleTime); err != nil {
		return invalidRequest("%v", err)
	}

	return nil
}
