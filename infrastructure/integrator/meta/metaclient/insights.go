package metaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/domain"
)

// GetAdInsights busca os insights diários por anúncio da conta e segue paging.next até o fim
func (c *MetaClient) GetAdInsights(ctx context.Context, accountID, token string, since, until time.Time, fields []string) ([]map[string]any, error) {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.Cfg.Meta.URL, strings.TrimPrefix(accountID, "act_"))

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("level", "ad")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("fields", strings.Join(fields, ","))
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageSize))
	params.Add("access_token", token)

	next := baseURL + "?" + params.Encode()
	rows := make([]map[string]any, 0)
	pages := 0

	for next != "" {
		page, err := c.getInsightsPage(ctx, next)
		if err != nil {
			return nil, err
		}
		pages++

		rows = append(rows, page.Data...)
		next = page.Paging.Next
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"pages":      pages,
		"rows":       len(rows),
	}).Debug("insights: paginação concluída")

	return rows, nil
}

func (c *MetaClient) getInsightsPage(ctx context.Context, pageURL string) (*metadomain.InsightsPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	// UseNumber preserva os valores numéricos sem passar por float64
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var page metadomain.InsightsPage
	if err := decoder.Decode(&page); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, fmt.Errorf("erro ao decodificar página de insights: %w", err)
	}

	return &page, nil
}
