package exporting

import (
	"context"
	"time"

	"github.com/vfg2006/insights-exporter/internal/domain"
)

type InsightsFetcher interface {
	FetchAccountInsights(ctx context.Context, accountID, token string, since, until time.Time, fields []string) ([]domain.InsightRow, error)
}

// SheetWriter é o cliente da planilha de destino
type SheetWriter interface {
	LastRow(ctx context.Context, spreadsheetID, sheetName string) (int, error)
	ClearRanges(ctx context.Context, spreadsheetID string, ranges []string) error
	BatchWrite(ctx context.Context, spreadsheetID string, data []domain.SheetRangeValues) error
}

// CredentialProvider devolve token vazio ou cliente nil quando o usuário não conectou a integração
type CredentialProvider interface {
	GetSourceToken(ctx context.Context, userID int) (string, error)
	GetDestinationClient(ctx context.Context, userID int) (SheetWriter, error)
}

type AuditSink interface {
	RecordRun(ctx context.Context, record *domain.ExportAuditRecord) error
}

type Exporter interface {
	RunExport(ctx context.Context, req *domain.ExportRunRequest) (*domain.ExportRunResult, error)
}
