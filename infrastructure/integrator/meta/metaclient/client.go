package metaclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/insights-exporter/internal/config"
)

type Client interface {
	GetAdInsights(ctx context.Context, accountID, token string, since, until time.Time, fields []string) ([]map[string]any, error)
	HandleResponse(resp *http.Response) ([]byte, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Meta.HTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &MetaClient{
		Cfg:        cfg,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}
