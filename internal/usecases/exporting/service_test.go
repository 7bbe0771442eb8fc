package exporting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting/mocks"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	fetcher     *mocks.MockInsightsFetcher
	credentials *mocks.MockCredentialProvider
	audit       *mocks.MockAuditSink
	sheet       *mocks.MockSheetWriter
}

func newTestService(t *testing.T, now time.Time) (*exporting.Service, *serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		fetcher:     mocks.NewMockInsightsFetcher(ctrl),
		credentials: mocks.NewMockCredentialProvider(ctrl),
		audit:       mocks.NewMockAuditSink(ctrl),
		sheet:       mocks.NewMockSheetWriter(ctrl),
	}

	cfg := &config.Config{}
	cfg.ExportPipeline.MaxConcurrentAccounts = 2
	cfg.ExportPipeline.DefaultTimezone = "America/Sao_Paulo"
	cfg.ExportPipeline.FilterZeroRows = true

	svc := exporting.NewService(cfg, m.fetcher, m.credentials, m.audit, exporting.WithClock(func() time.Time { return now }))
	return svc, m
}

func baseRequest() *domain.ExportRunRequest {
	configID := "cfg-1"
	return &domain.ExportRunRequest{
		UserID:        7,
		AccountIDs:    []string{"act_111", "222"},
		DateRange:     domain.DateRangeYesterday,
		SpreadsheetID: "sheet-1",
		SheetName:     "Dados",
		ColumnMapping: domain.ColumnMapping{
			{MetricKey: "date", Column: "A"},
			{MetricKey: "ad_id", Column: "B"},
			{MetricKey: "spend", Column: "C"},
			{MetricKey: domain.SkipMetric, Column: "D"},
			{MetricKey: "messages", Column: "E"},
		},
		WriteMode:       domain.WriteModeAppend,
		Timezone:        "America/Sao_Paulo",
		Trigger:         domain.RunTriggerAutomatic,
		ConfigurationID: &configID,
	}
}

func TestRunExport_Success(t *testing.T) {
	// 01:00 UTC do dia 11 ainda é dia 10 em São Paulo: "ontem" é dia 09
	now := time.Date(2024, 6, 11, 1, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.credentials.EXPECT().GetSourceToken(gomock.Any(), 7).Return("meta-token", nil)
	m.credentials.EXPECT().GetDestinationClient(gomock.Any(), 7).Return(m.sheet, nil)

	fields := []string{"date_start", "ad_id", "spend", "actions"}
	m.fetcher.EXPECT().
		FetchAccountInsights(gomock.Any(), "111", "meta-token", gomock.Any(), gomock.Any(), fields).
		DoAndReturn(func(_ context.Context, _, _ string, since, until time.Time, _ []string) ([]domain.InsightRow, error) {
			assert.Equal(t, "2024-06-09", since.Format(time.DateOnly))
			assert.Equal(t, "2024-06-09", until.Format(time.DateOnly))
			return []domain.InsightRow{
				{"date_start": "2024-06-09", "ad_id": "a1", "spend": "5.00", "actions": []any{
					map[string]any{"action_type": "onsite_conversion.messaging_conversation_started_7d", "value": "2"},
				}},
				{"date_start": "2024-06-09", "ad_id": "a2", "spend": "0"},
			}, nil
		})
	m.fetcher.EXPECT().
		FetchAccountInsights(gomock.Any(), "222", "meta-token", gomock.Any(), gomock.Any(), fields).
		Return([]domain.InsightRow{{"date_start": "2024-06-09", "ad_id": "b1", "spend": "1.25"}}, nil)

	m.sheet.EXPECT().LastRow(gomock.Any(), "sheet-1", "Dados").Return(10, nil)
	m.sheet.EXPECT().BatchWrite(gomock.Any(), "sheet-1", gomock.Cond(func(data []domain.SheetRangeValues) bool {
		return len(data) == 2 &&
			data[0].Range == "'Dados'!A11:C12" && len(data[0].Values) == 2 &&
			data[1].Range == "'Dados'!E11:E12" && len(data[1].Values) == 2
	})).Return(nil)

	var recorded *domain.ExportAuditRecord
	m.audit.EXPECT().RecordRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *domain.ExportAuditRecord) error {
		recorded = r
		return nil
	}).Times(1)

	result, err := svc.RunExport(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, result.AccountsProcessed)
	assert.Equal(t, 3, result.RowsFetched)
	assert.Equal(t, 2, result.RowsWritten)
	assert.Equal(t, "2024-06-09", result.DateStart)

	require.NotNil(t, recorded)
	assert.Equal(t, result.RunID, recorded.ID)
	assert.Equal(t, domain.RunStatusSuccess, recorded.Status)
	assert.Equal(t, domain.RunTriggerAutomatic, recorded.Trigger)
	assert.Equal(t, "cfg-1", *recorded.ConfigurationID)
	assert.Nil(t, recorded.ErrorMessage)
	assert.Equal(t, 2, recorded.RowsWritten)
}

func TestRunExport_Preconditions(t *testing.T) {
	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mutate      func(req *domain.ExportRunRequest)
		setup       func(m *serviceMocks)
		expectedErr error
	}{
		{
			name:        "mapeamento só com colunas ignoradas",
			mutate:      func(req *domain.ExportRunRequest) { req.ColumnMapping = domain.ColumnMapping{{MetricKey: "skip", Column: "A"}} },
			expectedErr: exporting.ErrEmptyMapping,
		},
		{
			name:        "sem contas",
			mutate:      func(req *domain.ExportRunRequest) { req.AccountIDs = []string{" ", "act_"} },
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name:        "sem planilha",
			mutate:      func(req *domain.ExportRunRequest) { req.SpreadsheetID = "" },
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name:        "modo de escrita desconhecido",
			mutate:      func(req *domain.ExportRunRequest) { req.WriteMode = "merge" },
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name:        "fuso inválido",
			mutate:      func(req *domain.ExportRunRequest) { req.Timezone = "Mars/Olympus" },
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name: "coluna além de ZZZ",
			mutate: func(req *domain.ExportRunRequest) {
				req.ColumnMapping = domain.ColumnMapping{{MetricKey: "spend", Column: "AAAAAAAAAAAAAAAAAAAA"}}
			},
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name:        "fuso do servidor",
			mutate:      func(req *domain.ExportRunRequest) { req.Timezone = "Local" },
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name:        "período inválido",
			mutate:      func(req *domain.ExportRunRequest) { req.DateRange = "last_month" },
			expectedErr: exporting.ErrInvalidRequest,
		},
		{
			name:   "sem token do Meta",
			mutate: func(req *domain.ExportRunRequest) {},
			setup: func(m *serviceMocks) {
				m.credentials.EXPECT().GetSourceToken(gomock.Any(), 7).Return("", nil)
			},
			expectedErr: exporting.ErrMissingSourceCredentials,
		},
		{
			name:   "sem credenciais do Google",
			mutate: func(req *domain.ExportRunRequest) {},
			setup: func(m *serviceMocks) {
				m.credentials.EXPECT().GetSourceToken(gomock.Any(), 7).Return("meta-token", nil)
				m.credentials.EXPECT().GetDestinationClient(gomock.Any(), 7).Return(nil, nil)
			},
			expectedErr: exporting.ErrMissingDestinationCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, now)
			if tt.setup != nil {
				tt.setup(m)
			}
			// Nenhuma busca, escrita ou auditoria é esperada: o gomock falha se acontecerem

			req := baseRequest()
			tt.mutate(req)

			result, err := svc.RunExport(context.Background(), req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.True(t, exporting.IsPreconditionError(err))
		})
	}
}

func TestRunExport_FailuresAreAudited(t *testing.T) {
	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(m *serviceMocks)
		stage string
	}{
		{
			name: "erro na busca de uma conta descarta as demais",
			setup: func(m *serviceMocks) {
				m.fetcher.EXPECT().FetchAccountInsights(gomock.Any(), "111", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]domain.InsightRow{{"ad_id": "a1", "spend": "1"}}, nil).AnyTimes()
				m.fetcher.EXPECT().FetchAccountInsights(gomock.Any(), "222", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("meta api: status 400, code 100: Invalid parameter"))
			},
			stage: "busca de insights",
		},
		{
			name: "erro na escrita",
			setup: func(m *serviceMocks) {
				m.fetcher.EXPECT().FetchAccountInsights(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]domain.InsightRow{{"ad_id": "a1", "spend": "1"}}, nil).Times(2)
				m.sheet.EXPECT().LastRow(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
				m.sheet.EXPECT().BatchWrite(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("permission denied"))
			},
			stage: "escrita na planilha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, now)
			m.credentials.EXPECT().GetSourceToken(gomock.Any(), 7).Return("meta-token", nil)
			m.credentials.EXPECT().GetDestinationClient(gomock.Any(), 7).Return(m.sheet, nil)
			tt.setup(m)

			var recorded *domain.ExportAuditRecord
			m.audit.EXPECT().RecordRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *domain.ExportAuditRecord) error {
				recorded = r
				return nil
			}).Times(1)

			result, err := svc.RunExport(context.Background(), baseRequest())

			assert.Nil(t, result)
			var runErr *exporting.RunError
			require.ErrorAs(t, err, &runErr)
			assert.Equal(t, tt.stage, runErr.Stage)
			assert.False(t, exporting.IsPreconditionError(err))

			require.NotNil(t, recorded)
			assert.Equal(t, runErr.RunID, recorded.ID)
			assert.Equal(t, domain.RunStatusError, recorded.Status)
			require.NotNil(t, recorded.ErrorMessage)
			assert.Contains(t, *recorded.ErrorMessage, tt.stage)
			assert.Zero(t, recorded.RowsWritten)
		})
	}
}

func TestRunExport_AuditFailureDoesNotMaskResult(t *testing.T) {
	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	req := baseRequest()
	req.AccountIDs = []string{"111"}
	req.WriteMode = domain.WriteModeOverwrite

	m.credentials.EXPECT().GetSourceToken(gomock.Any(), 7).Return("meta-token", nil)
	m.credentials.EXPECT().GetDestinationClient(gomock.Any(), 7).Return(m.sheet, nil)
	m.fetcher.EXPECT().FetchAccountInsights(gomock.Any(), "111", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.sheet.EXPECT().ClearRanges(gomock.Any(), "sheet-1", []string{"'Dados'!A2:C", "'Dados'!E2:E"}).Return(nil)
	m.audit.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	result, err := svc.RunExport(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 0, result.RowsWritten)
	assert.Equal(t, 1, result.AccountsProcessed)
}
