package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/infrastructure/database/postgres"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/credentials"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/meta"
	"github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-exporter/infrastructure/repository"
	"github.com/vfg2006/insights-exporter/internal/api/handler"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/scheduler"
	"github.com/vfg2006/insights-exporter/internal/usecases/authenticating"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
)

// Container reúne as dependências compartilhadas pela API e pela CLI
type Container struct {
	Config         *config.Config
	Conn           postgres.Conn
	Users          repository.UserRepository
	Integrations   repository.IntegrationRepository
	Configurations repository.ExportConfigurationRepository
	Runs           repository.ExportRunRepository
	Authenticator  authenticating.Authenticator
	Exporter       *exporting.Service
	Scheduler      *scheduler.ExportSchedulerService
}

func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	users := repository.NewUserRepository(conn)
	integrations := repository.NewIntegrationRepository(conn)
	configurations := repository.NewExportConfigurationRepository(conn)
	runs := repository.NewExportRunRepository(conn)

	credentialProvider, err := credentials.NewProvider(cfg, integrations)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	metaIntegrator := meta.New(cfg, metaclient.NewClient(cfg))
	exporter := exporting.NewService(cfg, metaIntegrator, credentialProvider, runs)

	exportScheduler := scheduler.NewExportSchedulerService(configurations, runs, exporter, cfg)

	logrus.Info("Dependências inicializadas com sucesso")

	return &Container{
		Config:         cfg,
		Conn:           conn,
		Users:          users,
		Integrations:   integrations,
		Configurations: configurations,
		Runs:           runs,
		Authenticator:  authenticating.NewService(users, cfg),
		Exporter:       exporter,
		Scheduler:      exportScheduler,
	}, nil
}

// ExportServices monta as dependências das rotas de exportação
func (c *Container) ExportServices() handler.ExportServices {
	return handler.ExportServices{
		Runner:         c.Exporter,
		Configurations: c.Configurations,
		Runs:           c.Runs,
		Integrations:   c.Integrations,
	}
}

func (c *Container) Close() error {
	return c.Conn.Close()
}
