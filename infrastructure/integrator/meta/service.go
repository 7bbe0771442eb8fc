package meta

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchAccountInsights busca todas as linhas (anúncio, dia) de uma conta no período
func (s *MetaIntegrator) FetchAccountInsights(ctx context.Context, accountID, token string, since, until time.Time, fields []string) ([]domain.InsightRow, error) {
	requested := MergeFields(metadomain.BaseInsightFields, fields)

	resp, err := s.Client.GetAdInsights(ctx, accountID, token, since, until, requested)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":    accountID,
			"token_expired": metaclient.IsTokenExpired(err),
			"rate_limited":  metaclient.IsRateLimited(err),
			"error":         err.Error(),
		}).Error("insights: failed to get ad insights from API")
		return nil, err
	}

	rows := make([]domain.InsightRow, 0, len(resp))
	for _, item := range resp {
		rows = append(rows, domain.InsightRow(item))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"since":      since.Format(time.DateOnly),
		"until":      until.Format(time.DateOnly),
		"rows":       len(rows),
	}).Debug("insights: successfully retrieved ad insights")

	return rows, nil
}

// MergeFields une os campos base com os campos pedidos, sem repetição e mantendo a ordem
func MergeFields(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))

	for _, list := range [][]string{base, extra} {
		for _, field := range list {
			if field == "" {
				continue
			}
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			merged = append(merged, field)
		}
	}

	return merged
}
