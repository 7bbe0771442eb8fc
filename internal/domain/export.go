package domain

import (
	"time"
)

// SkipMetric marca uma coluna que não deve ser tocada pela exportação
const SkipMetric = "skip"

type WriteMode string

const (
	WriteModeAppend    WriteMode = "append"
	WriteModeOverwrite WriteMode = "overwrite"
)

func (m WriteMode) IsValid() bool {
	return m == WriteModeAppend || m == WriteModeOverwrite
}

type RunTrigger string

const (
	RunTriggerManual    RunTrigger = "manual"
	RunTriggerAutomatic RunTrigger = "automatic"
)

type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusError   RunStatus = "error"
)

// Intervalos relativos aceitos em DateRange, além de datas explícitas
const (
	DateRangeToday     = "today"
	DateRangeYesterday = "yesterday"
	DateRangeLast7Days = "last_7_days"
)

// MappingEntry associa uma métrica a uma coluna da planilha
type MappingEntry struct {
	MetricKey string `json:"metric" yaml:"metric"`
	Column    string `json:"column" yaml:"column"`
}

// IsSkipped indica que a coluna deve ser preservada
func (e MappingEntry) IsSkipped() bool {
	return e.MetricKey == "" || e.MetricKey == SkipMetric
}

type ColumnMapping []MappingEntry

// Active retorna apenas as entradas que escrevem valores
func (m ColumnMapping) Active() ColumnMapping {
	active := make(ColumnMapping, 0, len(m))
	for _, entry := range m {
		if !entry.IsSkipped() {
			active = append(active, entry)
		}
	}
	return active
}

// ExportRunRequest representa os parâmetros de uma execução da exportação
type ExportRunRequest struct {
	UserID            int           `json:"user_id"`
	AccountIDs        []string      `json:"account_ids"`
	DateRange         string        `json:"date_range"`
	SpreadsheetID     string        `json:"spreadsheet_id"`
	SheetName         string        `json:"sheet_name"`
	ColumnMapping     ColumnMapping `json:"column_mapping"`
	WriteMode         WriteMode     `json:"write_mode"`
	Timezone          string        `json:"timezone"`
	Trigger           RunTrigger    `json:"trigger"`
	ConfigurationID   *string       `json:"configuration_id,omitempty"`
	ConfigurationName string        `json:"configuration_name,omitempty"`
}

// ExportRunResult é o retorno de uma execução bem-sucedida
type ExportRunResult struct {
	RunID             string `json:"run_id"`
	AccountsProcessed int    `json:"accounts_processed"`
	RowsFetched       int    `json:"rows_fetched"`
	RowsWritten       int    `json:"rows_written"`
	DateStart         string `json:"date_start"`
	DateStop          string `json:"date_stop"`
}

// ExportAuditRecord é gravado uma única vez ao final de cada execução iniciada
type ExportAuditRecord struct {
	ID                string     `json:"id"`
	ConfigurationID   *string    `json:"configuration_id,omitempty"`
	UserID            int        `json:"user_id"`
	Trigger           RunTrigger `json:"trigger"`
	Status            RunStatus  `json:"status"`
	AccountsProcessed int        `json:"accounts_processed"`
	RowsFetched       int        `json:"rows_fetched"`
	RowsWritten       int        `json:"rows_written"`
	DateStart         string     `json:"date_start"`
	DateStop          string     `json:"date_stop"`
	ErrorMessage      *string    `json:"error_message,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        time.Time  `json:"finished_at"`
}

// ExportConfiguration é a versão salva de uma exportação, com agendamento
type ExportConfiguration struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	OwnerID       int           `json:"owner_id"`
	Timezone      string        `json:"timezone"`
	AccountIDs    []string      `json:"account_ids"`
	SpreadsheetID string        `json:"spreadsheet_id"`
	SheetName     string        `json:"sheet_name"`
	ColumnMapping ColumnMapping `json:"column_mapping"`
	WriteMode     WriteMode     `json:"write_mode"`
	DateRange     string        `json:"date_range"`
	AutoEnabled   bool          `json:"auto_enabled"`
	ScheduleTime  string        `json:"schedule_time"`
	ScheduleDays  []int         `json:"schedule_days"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ToRunRequest sintetiza uma requisição de execução a partir da configuração salva
func (c *ExportConfiguration) ToRunRequest(trigger RunTrigger, timezone string) *ExportRunRequest {
	configID := c.ID
	return &ExportRunRequest{
		UserID:            c.OwnerID,
		AccountIDs:        c.AccountIDs,
		DateRange:         c.DateRange,
		SpreadsheetID:     c.SpreadsheetID,
		SheetName:         c.SheetName,
		ColumnMapping:     c.ColumnMapping,
		WriteMode:         c.WriteMode,
		Timezone:          timezone,
		Trigger:           trigger,
		ConfigurationID:   &configID,
		ConfigurationName: c.Name,
	}
}

// ConfigurationError é uma falha de uma configuração durante a rodada do agendador
type ConfigurationError struct {
	ConfigurationID string `json:"configuration_id"`
	Name            string `json:"name"`
	Message         string `json:"message"`
}

// PassSummary resume uma rodada do agendador
type PassSummary struct {
	Evaluated int                  `json:"evaluated"`
	Processed int                  `json:"processed"`
	Succeeded int                  `json:"succeeded"`
	Skipped   int                  `json:"skipped"`
	Errors    []ConfigurationError `json:"errors"`
	StartedAt time.Time            `json:"started_at"`
	Duration  string               `json:"duration"`
}
