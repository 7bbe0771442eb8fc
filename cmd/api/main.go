package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/internal/api"
	"github.com/vfg2006/insights-exporter/internal/app"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := app.Build(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar dependências")
	}
	defer container.Close()

	if err := container.Scheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de exportações")
	} else {
		logrus.Info("Agendador de exportações iniciado")
	}

	server, err := api.New(
		cfg,
		container.Authenticator,
		container.ExportServices(),
		container.Scheduler,
		container.Conn,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
