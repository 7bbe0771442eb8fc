package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
)

type stubIntegrations struct {
	integration *domain.UserIntegration
	err         error
}

func (s stubIntegrations) GetIntegration(_ context.Context, _ int) (*domain.UserIntegration, error) {
	return s.integration, s.err
}

type stubSheet struct {
	exporting.SheetWriter
	credentials string
}

func newTestProvider(reader IntegrationReader, defaults string) *Provider {
	p := &Provider{integrations: reader, defaultCredentials: []byte(defaults)}
	return p.WithSheetsFactory(func(_ context.Context, credentialsJSON []byte) (exporting.SheetWriter, error) {
		return &stubSheet{credentials: string(credentialsJSON)}, nil
	})
}

func TestGetSourceToken(t *testing.T) {
	tests := []struct {
		name      string
		reader    stubIntegrations
		wantToken string
		wantErr   bool
	}{
		{name: "Token salvo", reader: stubIntegrations{integration: &domain.UserIntegration{MetaAccessToken: "tok"}}, wantToken: "tok"},
		{name: "Usuário sem integração", reader: stubIntegrations{}, wantToken: ""},
		{name: "Erro no repositório", reader: stubIntegrations{err: errors.New("falha")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := newTestProvider(tt.reader, "").GetSourceToken(t.Context(), 7)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestGetDestinationClient(t *testing.T) {
	tests := []struct {
		name            string
		reader          stubIntegrations
		defaults        string
		wantNil         bool
		wantCredentials string
	}{
		{
			name:            "Credencial do usuário tem prioridade",
			reader:          stubIntegrations{integration: &domain.UserIntegration{GoogleCredentialsJSON: `{"user":true}`}},
			defaults:        `{"default":true}`,
			wantCredentials: `{"user":true}`,
		},
		{
			name:            "Cai na service account padrão",
			reader:          stubIntegrations{integration: &domain.UserIntegration{MetaAccessToken: "tok"}},
			defaults:        `{"default":true}`,
			wantCredentials: `{"default":true}`,
		},
		{
			name:    "Sem credencial nenhuma devolve nil",
			reader:  stubIntegrations{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newTestProvider(tt.reader, tt.defaults).GetDestinationClient(t.Context(), 7)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, client)
				return
			}
			sheet, ok := client.(*stubSheet)
			require.True(t, ok)
			assert.Equal(t, tt.wantCredentials, sheet.credentials)
		})
	}
}
