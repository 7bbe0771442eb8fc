package exporting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/insights-exporter/internal/domain"
	"golang.org/x/sync/errgroup"
)

type fetchResult struct {
	rows              []domain.InsightRow
	accountsProcessed int
}

// fetchAccounts busca cada conta em paralelo (até limit simultâneas). Cada conta
// escreve apenas no seu próprio slot; o primeiro erro cancela as demais e descarta tudo.
func fetchAccounts(ctx context.Context, fetcher InsightsFetcher, accountIDs []string, token string, since, until time.Time, fields []string, limit int) (*fetchResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	perAccount := make([][]domain.InsightRow, len(accountIDs))

	for i, accountID := range accountIDs {
		g.Go(func() error {
			rows, err := fetcher.FetchAccountInsights(gctx, accountID, token, since, until, fields)
			if err != nil {
				return fmt.Errorf("conta %s: %w", accountID, err)
			}
			perAccount[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &fetchResult{accountsProcessed: len(accountIDs)}
	for _, rows := range perAccount {
		result.rows = append(result.rows, rows...)
	}

	return result, nil
}
