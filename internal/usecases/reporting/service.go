package reporting

import (
	"errors"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
	"github.com/vfg2006/sales-territory-api/pkg/utils"
)

// ErrTerritoryNotFound indica consulta de detalhe para um território inexistente.
var ErrTerritoryNotFound = errors.New("território não encontrado")

type Service struct {
	scopeResolver  scoping.Resolver
	saleRepo       repository.SaleRepository
	territoryRepo  repository.TerritoryRepository
	assignmentRepo repository.AssignmentRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
}

func NewService(
	scopeResolver scoping.Resolver,
	saleRepo repository.SaleRepository,
	territoryRepo repository.TerritoryRepository,
	assignmentRepo repository.AssignmentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) Reporter {
	return &Service{
		scopeResolver:  scopeResolver,
		saleRepo:       saleRepo,
		territoryRepo:  territoryRepo,
		assignmentRepo: assignmentRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
	}
}

func (s *Service) TerritoryPerformance(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.TerritoryPerformance, error) {
	scope, err := s.scopeResolver.ResolveScope(caller, repID, window)
	if err != nil {
		return nil, err
	}
	if scope.IsEmpty() {
		return []*domain.TerritoryPerformance{}, nil
	}

	sales, territories, assignments, err := s.fetchScopeData(scope, window)
	if err != nil {
		return nil, err
	}

	buckets := Aggregate(sales, GroupByTerritory)
	repsByTerritory := groupAssignments(assignments)

	rows := make([]*domain.TerritoryPerformance, 0, len(territories))
	for _, territory := range territories {
		bucket := buckets[BucketKey{ID: territory.ID}]

		row := &domain.TerritoryPerformance{
			TerritoryID:   territory.ID,
			TerritoryName: territory.Name,
			State:         territory.State,
			Region:        territory.Region,
			AssignedReps:  repsByTerritory[territory.ID],
		}
		if row.AssignedReps == nil {
			row.AssignedReps = []int{}
		}

		if bucket != nil {
			row.TotalRevenue = bucket.Revenue
			row.TotalDeals = bucket.Deals
			if bucket.Deals > 0 {
				row.AvgDealSize = utils.RoundToInt(bucket.Revenue / float64(bucket.Deals))
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].TerritoryID < rows[j].TerritoryID
	})

	return rows, nil
}

func (s *Service) TerritoryDetail(caller domain.Caller, territoryID int, window *domain.SaleFilter) (*domain.TerritoryDetail, error) {
	scope, err := s.scopeResolver.ResolveScope(caller, nil, window)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(territoryID) {
		return nil, scoping.ErrTerritoryOutOfScope
	}

	filter := scopedFilter(scope, window)
	filter.TerritoryIDs = []int{territoryID}

	// Buscas independentes correm em paralelo; a agregação espera todas.
	var (
		sales          []*domain.SaleRecord
		territory      *domain.Territory
		assignments    []*domain.Assignment
		salesErr       error
		territoryErr   error
		assignmentsErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		sales, salesErr = s.saleRepo.ListSales(filter)
	}()

	go func() {
		defer wg.Done()
		territory, territoryErr = s.territoryRepo.GetByID(territoryID)
	}()

	go func() {
		defer wg.Done()
		assignments, assignmentsErr = s.assignmentRepo.ListByTerritoryIDs([]int{territoryID})
	}()

	wg.Wait()

	if err := firstError(salesErr, territoryErr, assignmentsErr); err != nil {
		logrus.WithError(err).WithField("territory_id", territoryID).Error("reporting: falha ao buscar dados do território")
		return nil, err
	}

	if territory == nil {
		return nil, ErrTerritoryNotFound
	}

	buckets := Aggregate(sales, GroupByTerritory)
	bucket := buckets[BucketKey{ID: territoryID}]

	detail := &domain.TerritoryDetail{
		TerritoryPerformance: domain.TerritoryPerformance{
			TerritoryID:   territory.ID,
			TerritoryName: territory.Name,
			State:         territory.State,
			Region:        territory.Region,
			AssignedReps:  groupAssignments(assignments)[territory.ID],
		},
	}
	if detail.AssignedReps == nil {
		detail.AssignedReps = []int{}
	}

	if bucket != nil {
		detail.TotalRevenue = bucket.Revenue
		detail.TotalDeals = bucket.Deals
		if bucket.Deals > 0 {
			detail.AvgDealSize = utils.RoundToInt(bucket.Revenue / float64(bucket.Deals))
		}
	}

	detail.MonthlyTrend = BuildMonthlyTrend(Aggregate(sales, GroupByMonth))

	topProducts, err := s.topProducts(sales, DefaultTopN)
	if err != nil {
		return nil, err
	}
	detail.TopProducts = topProducts

	topCustomers, err := s.topCustomers(sales, DefaultTopN)
	if err != nil {
		return nil, err
	}
	detail.TopCustomers = topCustomers

	return detail, nil
}

func (s *Service) LiveMap(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.MapFeature, error) {
	return s.mapFeatures(caller, repID, window, ClassifyFixedFraction)
}

func (s *Service) ChoroplethMap(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.MapFeature, error) {
	return s.mapFeatures(caller, repID, window, ClassifyPercentile)
}

func (s *Service) mapFeatures(
	caller domain.Caller,
	repID *int,
	window *domain.SaleFilter,
	classify func(map[BucketKey]*Bucket) map[BucketKey]string,
) ([]*domain.MapFeature, error) {
	scope, err := s.scopeResolver.ResolveScope(caller, repID, window)
	if err != nil {
		return nil, err
	}
	if scope.IsEmpty() {
		return []*domain.MapFeature{}, nil
	}

	sales, territories, _, err := s.fetchScopeData(scope, window)
	if err != nil {
		return nil, err
	}

	// Territórios sem venda entram com bucket zerado: todo território em
	// escopo precisa de uma cor no mapa.
	buckets := territoryBuckets(sales, territories)
	labels := classify(buckets)

	features := make([]*domain.MapFeature, 0, len(territories))
	for _, territory := range territories {
		key := BucketKey{ID: territory.ID}
		bucket := buckets[key]

		features = append(features, &domain.MapFeature{
			TerritoryID: territory.ID,
			Name:        territory.Name,
			State:       territory.State,
			Region:      territory.Region,
			Latitude:    territory.Latitude,
			Longitude:   territory.Longitude,
			Revenue:     bucket.Revenue,
			Deals:       bucket.Deals,
			ColorBucket: labels[key],
		})
	}

	return features, nil
}

func (s *Service) ManagementSummary(caller domain.Caller, window *domain.SaleFilter) ([]*domain.TerritorySummary, error) {
	scope, err := s.scopeResolver.ResolveScope(caller, nil, window)
	if err != nil {
		return nil, err
	}
	if scope.IsEmpty() {
		return []*domain.TerritorySummary{}, nil
	}

	sales, territories, _, err := s.fetchScopeData(scope, window)
	if err != nil {
		return nil, err
	}

	buckets := territoryBuckets(sales, territories)
	labels := ClassifyPercentile(buckets)

	summaries := make([]*domain.TerritorySummary, 0, len(territories))
	for _, territory := range territories {
		key := BucketKey{ID: territory.ID}
		bucket := buckets[key]

		summaries = append(summaries, &domain.TerritorySummary{
			TerritoryID:   territory.ID,
			TerritoryName: territory.Name,
			Revenue:       bucket.Revenue,
			Deals:         bucket.Deals,
			Bucket:        labels[key],
			Insight:       InsightTag(bucket.Revenue, bucket.Deals),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].TerritoryID < summaries[j].TerritoryID
	})

	return summaries, nil
}

// fetchScopeData busca em paralelo as três fontes de uma visão agregada:
// vendas, territórios e vínculos. Não há dependência de ordem entre as buscas;
// o retorno é o ponto de junção antes da agregação.
func (s *Service) fetchScopeData(scope scoping.Scope, window *domain.SaleFilter) ([]*domain.SaleRecord, []*domain.Territory, []*domain.Assignment, error) {
	filter := scopedFilter(scope, window)

	var scopeIDs []int
	if !scope.AllTerritories {
		scopeIDs = scope.TerritoryIDs
	}

	var (
		sales          []*domain.SaleRecord
		territories    []*domain.Territory
		assignments    []*domain.Assignment
		salesErr       error
		territoriesErr error
		assignmentsErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		sales, salesErr = s.saleRepo.ListSales(filter)
	}()

	go func() {
		defer wg.Done()
		territories, territoriesErr = s.territoryRepo.ListTerritories(scopeIDs)
	}()

	go func() {
		defer wg.Done()
		assignments, assignmentsErr = s.assignmentRepo.ListByTerritoryIDs(scopeIDs)
	}()

	wg.Wait()

	if err := firstError(salesErr, territoriesErr, assignmentsErr); err != nil {
		logrus.WithError(err).Error("reporting: falha ao buscar dados do escopo")
		return nil, nil, nil, err
	}

	return sales, territories, assignments, nil
}

// scopedFilter combina a janela solicitada com o escopo resolvido.
func scopedFilter(scope scoping.Scope, window *domain.SaleFilter) *domain.SaleFilter {
	filter := &domain.SaleFilter{}
	if window != nil {
		*filter = *window
	}

	if !scope.AllTerritories {
		filter.TerritoryIDs = scope.TerritoryIDs
	}
	if scope.RepID != nil {
		filter.RepIDs = []int{*scope.RepID}
	}

	return filter
}

// territoryBuckets agrega por território garantindo um bucket (possivelmente
// zerado) para cada território em escopo.
func territoryBuckets(sales []*domain.SaleRecord, territories []*domain.Territory) map[BucketKey]*Bucket {
	buckets := Aggregate(sales, GroupByTerritory)

	for _, territory := range territories {
		key := BucketKey{ID: territory.ID}
		if _, ok := buckets[key]; !ok {
			buckets[key] = &Bucket{Key: key}
		}
	}

	return buckets
}

func groupAssignments(assignments []*domain.Assignment) map[int][]int {
	reps := make(map[int][]int)
	for _, assignment := range assignments {
		reps[assignment.TerritoryID] = append(reps[assignment.TerritoryID], assignment.SalesRepID)
	}
	for territoryID := range reps {
		sort.Ints(reps[territoryID])
	}
	return reps
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
