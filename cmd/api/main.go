package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/internal/api"
	"github.com/vfg2006/sales-territory-api/internal/config"
	"github.com/vfg2006/sales-territory-api/internal/scheduler"
	"github.com/vfg2006/sales-territory-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
	"github.com/vfg2006/sales-territory-api/internal/usecases/targeting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	territoryRepo := repository.NewTerritoryRepository(pgConn)
	assignmentRepo := repository.NewAssignmentRepository(pgConn)
	targetRepo := repository.NewTargetRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	rankingRepo := repository.NewTerritoryRankingRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	scopeResolver := scoping.NewResolver(saleRepo, assignmentRepo)

	reportService := reporting.NewService(
		scopeResolver,
		saleRepo,
		territoryRepo,
		assignmentRepo,
		productRepo,
		customerRepo,
	)

	targetService := targeting.NewService(scopeResolver, targetRepo, saleRepo)

	// Inicializa o agendador de sincronização do ranking de territórios
	rankingSyncService := scheduler.NewTerritoryRankingSyncService(
		saleRepo,
		territoryRepo,
		rankingRepo,
		cfg,
	)

	// Inicia o agendador em background
	if err := rankingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ranking de territórios")
	} else {
		logrus.Info("Agendador do ranking de territórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		targetService,
		rankingRepo,
		authenticator,
		rankingSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
