package credentials

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
)

type IntegrationReader interface {
	GetIntegration(ctx context.Context, userID int) (*domain.UserIntegration, error)
}

// SheetsFactory cria o cliente da planilha a partir do JSON de credenciais
type SheetsFactory func(ctx context.Context, credentialsJSON []byte) (exporting.SheetWriter, error)

// Provider resolve as credenciais de origem e destino salvas para cada usuário
type Provider struct {
	integrations       IntegrationReader
	newSheets          SheetsFactory
	defaultCredentials []byte
}

func NewProvider(cfg *config.Config, integrations IntegrationReader) (*Provider, error) {
	provider := &Provider{
		integrations: integrations,
		newSheets: func(ctx context.Context, credentialsJSON []byte) (exporting.SheetWriter, error) {
			client, err := sheetsclient.NewFromCredentials(ctx, cfg, credentialsJSON)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}

	if cfg.Google.CredentialsFile != "" {
		content, err := os.ReadFile(cfg.Google.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler credenciais padrão do Google: %w", err)
		}
		provider.defaultCredentials = content
		logrus.WithField("file", cfg.Google.CredentialsFile).Info("credentials: service account padrão carregada")
	}

	return provider, nil
}

// WithSheetsFactory troca a criação do cliente da planilha
func (p *Provider) WithSheetsFactory(factory SheetsFactory) *Provider {
	p.newSheets = factory
	return p
}

func (p *Provider) GetSourceToken(ctx context.Context, userID int) (string, error) {
	integration, err := p.integrations.GetIntegration(ctx, userID)
	if err != nil {
		return "", err
	}
	if integration == nil {
		return "", nil
	}
	return integration.MetaAccessToken, nil
}

// GetDestinationClient devolve nil quando não há credencial do usuário nem padrão
func (p *Provider) GetDestinationClient(ctx context.Context, userID int) (exporting.SheetWriter, error) {
	integration, err := p.integrations.GetIntegration(ctx, userID)
	if err != nil {
		return nil, err
	}

	credentialsJSON := p.defaultCredentials
	if integration != nil && integration.GoogleCredentialsJSON != "" {
		credentialsJSON = []byte(integration.GoogleCredentialsJSON)
	}
	if len(credentialsJSON) == 0 {
		return nil, nil
	}

	return p.newSheets(ctx, credentialsJSON)
}
