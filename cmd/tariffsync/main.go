package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tariff-sync/infrastructure/database/migration"
	"github.com/vfg2006/tariff-sync/infrastructure/database/postgres"
	"github.com/vfg2006/tariff-sync/infrastructure/export/xlsx"
	"github.com/vfg2006/tariff-sync/infrastructure/integrator/googlesheets"
	"github.com/vfg2006/tariff-sync/infrastructure/integrator/googlesheets/sheetsclient"
	"github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries"
	"github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/wbclient"
	"github.com/vfg2006/tariff-sync/infrastructure/repository"
	"github.com/vfg2006/tariff-sync/infrastructure/repository/memory"
	"github.com/vfg2006/tariff-sync/internal/api"
	"github.com/vfg2006/tariff-sync/internal/api/handler"
	"github.com/vfg2006/tariff-sync/internal/config"
	"github.com/vfg2006/tariff-sync/internal/scheduler"
	"github.com/vfg2006/tariff-sync/internal/usecases/authenticating"
	"github.com/vfg2006/tariff-sync/internal/usecases/publishing"
	"github.com/vfg2006/tariff-sync/internal/usecases/tariffsync"
	"github.com/vfg2006/tariff-sync/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tariffRepo, db, closeStore := tariffStore(ctx, cfg.Database)
	defer closeStore()

	wbClient := wbclient.NewClient(cfg.Wildberries)
	wbIntegrator := wildberries.New(wbClient, cfg.TariffSync.Location)

	sink := publishSinks(ctx, cfg)

	syncService := tariffsync.NewService(
		wbIntegrator,
		tariffRepo,
		sink,
		tariffsync.Timeouts{
			Fetch:   cfg.TariffSync.FetchTimeout,
			Persist: cfg.TariffSync.PersistTimeout,
			Publish: cfg.TariffSync.PublishTimeout,
		},
	)

	tariffSyncService := scheduler.NewTariffSyncService(syncService, cfg)
	if err := tariffSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o agendador de sincronização de tarifas")
	}
	logrus.Info("Agendador de sincronização de tarifas iniciado com sucesso")

	authenticator := authenticating.NewService(cfg.Auth)

	server, err := api.New(cfg, authenticator, tariffSyncService, tariffRepo, db)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	// Aguarda a execução em andamento antes de fechar o banco
	tariffSyncService.Stop()
	logrus.Info("Aplicação finalizada")
}

// tariffStore escolhe o armazenamento conforme DB_DRIVER
func tariffStore(ctx context.Context, dbConfig config.Database) (repository.TariffRepository, handler.Pinger, func()) {
	if dbConfig.Driver == config.DriverMemory {
		logrus.Warn("Usando armazenamento em memória, os dados serão perdidos ao reiniciar")
		return memory.NewTariffRepository(), nil, func() {}
	}

	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	if dbConfig.AutoMigrate {
		if err := migration.Up(ctx, conn.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	return repository.NewTariffRepository(conn), conn, func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
		}
	}
}

// publishSinks monta os destinos configurados; sem nenhum, a publicação não faz nada
func publishSinks(ctx context.Context, cfg *config.Config) publishing.Sink {
	var sinks []publishing.Sink

	if cfg.GoogleSheets.Enabled() {
		client, err := sheetsclient.NewClient(ctx, cfg.GoogleSheets.CredentialsPath)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao criar cliente do Google Sheets")
		}
		sinks = append(sinks, googlesheets.New(client, cfg.GoogleSheets))
		logrus.WithField("sheets", len(cfg.GoogleSheets.SheetIDs)).Info("Publicação no Google Sheets habilitada")
	} else {
		logrus.Warn("GOOGLE_SHEETS_CREDENTIALS_PATH não configurado, publicação em planilhas desabilitada")
	}

	if cfg.XLSXExport.Path != "" {
		sinks = append(sinks, xlsx.NewSink(cfg.XLSXExport.Path))
		logrus.WithField("path", cfg.XLSXExport.Path).Info("Exportação XLSX habilitada")
	}

	return publishing.Chain(sinks...)
}
