// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/internal/config"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/pkg/utils"
)

type TerritoryRankingSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	TopN         int
}

// TerritoryRankingSyncService materializa diariamente o ranking mensal de
// territórios por receita, com posição e variação em relação ao snapshot
// anterior.
type TerritoryRankingSyncService struct {
	scheduler           *gocron.Scheduler
	saleRepo            repository.SaleRepository
	territoryRepo       repository.TerritoryRepository
	rankingRepo         repository.TerritoryRankingRepository
	config              TerritoryRankingSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewTerritoryRankingSyncService(
	saleRepo repository.SaleRepository,
	territoryRepo repository.TerritoryRepository,
	rankingRepo repository.TerritoryRankingRepository,
	cfg *config.Config,
) *TerritoryRankingSyncService {
	rankingConfig := TerritoryRankingSyncConfig{
		CronSchedule: cfg.RankingSync.CronSchedule,
		SyncEnabled:  cfg.RankingSync.SyncEnabled,
		TopN:         cfg.RankingSync.TopN,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rankingConfig.CronSchedule,
	}).Info("Configuração do agendador do ranking de territórios carregada")

	return &TerritoryRankingSyncService{
		scheduler:     scheduler,
		saleRepo:      saleRepo,
		territoryRepo: territoryRepo,
		rankingRepo:   rankingRepo,
		config:        rankingConfig,
	}
}

func (s *TerritoryRankingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do ranking de territórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do ranking de territórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateTerritoryRanking(); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de territórios")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do ranking de territórios: %w", err)
	}

	s.scheduler.StartAsync()

	// Parar o cron quando o contexto da aplicação for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking de territórios")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a sincronização fora do agendamento.
func (s *TerritoryRankingSyncService) TriggerManualSync() {
	go func() {
		if err := s.UpdateTerritoryRanking(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização manual do ranking de territórios")
		}
	}()
}

// GetStatus retorna o estado corrente do job para o endpoint de status.
func (s *TerritoryRankingSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":           s.config.SyncEnabled,
		"cron_schedule":     s.config.CronSchedule,
		"running":           s.syncRunning,
		"last_started_at":   s.lastSyncStartedAt,
		"last_completed_at": s.lastSyncCompletedAt,
	}
}

func (s *TerritoryRankingSyncService) UpdateTerritoryRanking() error {
	s.syncMutex.Lock()

	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Sincronização do ranking de territórios já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	syncID, _ := utils.GenerateID()
	logger := logrus.WithField("sync_id", syncID)
	logger.Info("Iniciando atualização do ranking de territórios")

	// Referência: ontem, para cobrir execuções logo após a virada do mês
	yesterday := time.Now().AddDate(0, 0, -1)
	month := int(yesterday.Month())
	year := yesterday.Year()

	sales, err := s.saleRepo.ListSales(&domain.SaleFilter{Month: &month, Year: &year})
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar vendas do mês para o ranking de territórios")
		return err
	}

	territories, err := s.territoryRepo.ListTerritories(nil)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar territórios para o ranking")
		return err
	}

	rankings, err := s.processTerritoryRanking(sales, territories, yesterday.Format("01-2006"))
	if err != nil {
		return err
	}

	if err := s.rankingRepo.SaveOrUpdateRanking(rankings); err != nil {
		logger.WithError(err).Error("Erro ao salvar ranking de territórios")
		return err
	}

	logger.WithField("territories", len(rankings)).Info("Atualização do ranking de territórios concluída")

	return nil
}

// processTerritoryRanking agrega, classifica e posiciona os territórios do
// mês, comparando com o snapshot anterior para derivar a variação de posição.
func (s *TerritoryRankingSyncService) processTerritoryRanking(
	sales []*domain.SaleRecord,
	territories []*domain.Territory,
	month string,
) ([]*domain.TerritoryRankingItem, error) {
	buckets := reporting.Aggregate(sales, reporting.GroupByTerritory)

	// Territórios sem venda entram zerados: o ranking cobre o catálogo todo
	for _, territory := range territories {
		key := reporting.BucketKey{ID: territory.ID}
		if _, ok := buckets[key]; !ok {
			buckets[key] = &reporting.Bucket{Key: key}
		}
	}

	labels := reporting.ClassifyPercentile(buckets)

	namesByID := make(map[int]string, len(territories))
	for _, territory := range territories {
		namesByID[territory.ID] = territory.Name
	}

	rankings := make([]*domain.TerritoryRankingItem, 0, len(territories))
	for _, territory := range territories {
		key := reporting.BucketKey{ID: territory.ID}
		bucket := buckets[key]

		rankings = append(rankings, &domain.TerritoryRankingItem{
			TerritoryID:   territory.ID,
			Month:         month,
			TerritoryName: namesByID[territory.ID],
			Revenue:       bucket.Revenue,
			Deals:         bucket.Deals,
			Bucket:        labels[key],
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Revenue != rankings[j].Revenue {
			return rankings[i].Revenue > rankings[j].Revenue
		}
		return rankings[i].TerritoryID < rankings[j].TerritoryID
	})

	if s.config.TopN > 0 && len(rankings) > s.config.TopN {
		rankings = rankings[:s.config.TopN]
	}

	for position, ranking := range rankings {
		ranking.Position = position + 1

		previous, err := s.rankingRepo.GetByTerritoryID(ranking.TerritoryID, month)
		if err != nil {
			logrus.WithError(err).WithField("territory_id", ranking.TerritoryID).Error("Erro ao buscar ranking anterior do território")
			return nil, err
		}

		if previous != nil {
			ranking.PreviousPosition = previous.Position
			// Positivo = subiu no ranking, negativo = desceu
			ranking.PositionChange = previous.Position - ranking.Position
		}
	}

	return rankings, nil
}
