package targeting

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
)

// DefaultPageSize é o tamanho padrão da página da listagem de desempenho.
const DefaultPageSize = 20

type TargetService interface {
	// SetTarget cria ou atualiza a meta de um vendedor para (mês, ano),
	// informando qual dos dois aconteceu.
	SetTarget(req *domain.SetTargetRequest) (*domain.SetTargetResult, error)

	// PerformanceListing retorna a página de linhas meta-versus-realizado do
	// período. Vendedores sem meta cadastrada são omitidos, mesmo com vendas.
	PerformanceListing(caller domain.Caller, month, year int, repID *int, page, limit int) (*domain.PerformancePage, error)
}

type Service struct {
	scopeResolver scoping.Resolver
	targetRepo    repository.TargetRepository
	saleRepo      repository.SaleRepository
}

func NewService(
	scopeResolver scoping.Resolver,
	targetRepo repository.TargetRepository,
	saleRepo repository.SaleRepository,
) TargetService {
	return &Service{
		scopeResolver: scopeResolver,
		targetRepo:    targetRepo,
		saleRepo:      saleRepo,
	}
}

func (s *Service) SetTarget(req *domain.SetTargetRequest) (*domain.SetTargetResult, error) {
	if err := validateTarget(req); err != nil {
		return nil, err
	}

	// Check-then-create: a atomicidade contra upserts concorrentes fica a
	// cargo da constraint de unicidade (sales_rep_id, month, year) no banco.
	existing, err := s.targetRepo.GetByRepMonthYear(req.SalesRepID, req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.targetRepo.UpdateAmount(existing.ID, req.TargetAmount); err != nil {
			return nil, err
		}
		existing.TargetAmount = req.TargetAmount

		logrus.WithFields(logrus.Fields{
			"sales_rep_id": req.SalesRepID,
			"month":        req.Month,
			"year":         req.Year,
		}).Info("targeting: meta atualizada")

		return &domain.SetTargetResult{
			Outcome: domain.TargetOutcomeUpdated,
			Target:  existing,
		}, nil
	}

	created, err := s.targetRepo.Create(&domain.SalesTarget{
		SalesRepID:   req.SalesRepID,
		Month:        req.Month,
		Year:         req.Year,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sales_rep_id": req.SalesRepID,
		"month":        req.Month,
		"year":         req.Year,
	}).Info("targeting: meta criada")

	return &domain.SetTargetResult{
		Outcome: domain.TargetOutcomeCreated,
		Target:  created,
	}, nil
}

func (s *Service) PerformanceListing(caller domain.Caller, month, year int, repID *int, page, limit int) (*domain.PerformancePage, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidYear
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	window := &domain.SaleFilter{Month: &month, Year: &year}

	scope, err := s.scopeResolver.ResolveScope(caller, repID, window)
	if err != nil {
		return nil, err
	}
	if scope.IsEmpty() {
		return emptyPage(page), nil
	}

	var repFilter []int
	if scope.RepID != nil {
		repFilter = []int{*scope.RepID}
	}

	targets, err := s.targetRepo.ListByPeriod(month, year, repFilter)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return emptyPage(page), nil
	}

	filter := &domain.SaleFilter{Month: &month, Year: &year}
	if !scope.AllTerritories {
		filter.TerritoryIDs = scope.TerritoryIDs
	}
	if scope.RepID != nil {
		filter.RepIDs = []int{*scope.RepID}
	}

	sales, err := s.saleRepo.ListSales(filter)
	if err != nil {
		return nil, err
	}

	buckets := reporting.Aggregate(sales, reporting.GroupByRep)

	// Só vendedores com meta para o período exato geram linha; quem não tem
	// meta é omitido silenciosamente, mesmo com vendas.
	rows := make([]*domain.PerformanceRow, 0, len(targets))
	for _, target := range targets {
		achieved := 0.0
		if bucket, ok := buckets[reporting.BucketKey{ID: target.SalesRepID}]; ok {
			achieved = bucket.Revenue
		}

		percentage, status := EvaluateTarget(target.TargetAmount, achieved)

		rows = append(rows, &domain.PerformanceRow{
			SalesRepID:            target.SalesRepID,
			TargetAmount:          target.TargetAmount,
			AchievedRevenue:       achieved,
			PerformancePercentage: percentage,
			Status:                status,
		})
	}

	return paginate(rows, page, limit), nil
}

func validateTarget(req *domain.SetTargetRequest) error {
	if req.SalesRepID <= 0 {
		return ErrInvalidRep
	}
	if req.Month < 1 || req.Month > 12 {
		return ErrInvalidMonth
	}
	if req.Year < 2000 || req.Year > 2100 {
		return ErrInvalidYear
	}
	if req.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func emptyPage(page int) *domain.PerformancePage {
	return &domain.PerformancePage{
		Rows:  []*domain.PerformanceRow{},
		Total: 0,
		Page:  page,
		Pages: 0,
	}
}

func paginate(rows []*domain.PerformanceRow, page, limit int) *domain.PerformancePage {
	total := len(rows)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start >= total {
		return &domain.PerformancePage{
			Rows:  []*domain.PerformanceRow{},
			Total: total,
			Page:  page,
			Pages: pages,
		}
	}

	end := start + limit
	if end > total {
		end = total
	}

	return &domain.PerformancePage{
		Rows:  rows[start:end],
		Total: total,
		Page:  page,
		Pages: pages,
	}
}
