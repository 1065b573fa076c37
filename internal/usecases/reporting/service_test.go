package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	saleRepo       *mocks.MockSaleRepository
	territoryRepo  *mocks.MockTerritoryRepository
	assignmentRepo *mocks.MockAssignmentRepository
	productRepo    *mocks.MockProductRepository
	customerRepo   *mocks.MockCustomerRepository
}

func newReportService(t *testing.T) (Reporter, *serviceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &serviceMocks{
		saleRepo:       mocks.NewMockSaleRepository(ctrl),
		territoryRepo:  mocks.NewMockTerritoryRepository(ctrl),
		assignmentRepo: mocks.NewMockAssignmentRepository(ctrl),
		productRepo:    mocks.NewMockProductRepository(ctrl),
		customerRepo:   mocks.NewMockCustomerRepository(ctrl),
	}

	resolver := scoping.NewResolver(m.saleRepo, m.assignmentRepo)

	service := NewService(resolver, m.saleRepo, m.territoryRepo, m.assignmentRepo, m.productRepo, m.customerRepo)

	return service, m
}

func TestTerritoryPerformance_IncluiTerritoriosSemVenda(t *testing.T) {
	service, m := newReportService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	m.saleRepo.EXPECT().
		ListSales(gomock.Any()).
		Return([]*domain.SaleRecord{
			{TerritoryID: 1, SalesRepID: 10, Revenue: 600, DealCount: intPtr(3)},
			{TerritoryID: 1, SalesRepID: 11, Revenue: 400, DealCount: intPtr(1)},
		}, nil)

	m.territoryRepo.EXPECT().
		ListTerritories(nil).
		Return([]*domain.Territory{
			{ID: 1, Name: "Norte", State: "SP"},
			{ID: 2, Name: "Sul", State: "RS"},
		}, nil)

	m.assignmentRepo.EXPECT().
		ListByTerritoryIDs(nil).
		Return([]*domain.Assignment{
			{SalesRepID: 10, TerritoryID: 1},
			{SalesRepID: 11, TerritoryID: 1},
		}, nil)

	rows, err := service.TerritoryPerformance(admin, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].TerritoryID)
	assert.Equal(t, 1000.0, rows[0].TotalRevenue)
	assert.Equal(t, 4, rows[0].TotalDeals)
	assert.Equal(t, 250, rows[0].AvgDealSize)
	assert.Equal(t, []int{10, 11}, rows[0].AssignedReps)

	// O território sem venda aparece zerado, com a lista de vendedores vazia
	// (nunca nula) para serialização estável
	assert.Equal(t, 2, rows[1].TerritoryID)
	assert.Equal(t, 0.0, rows[1].TotalRevenue)
	assert.Equal(t, 0, rows[1].AvgDealSize)
	assert.NotNil(t, rows[1].AssignedReps)
	assert.Empty(t, rows[1].AssignedReps)
}

func TestTerritoryPerformance_EscopoVazioNaoBuscaVendas(t *testing.T) {
	service, m := newReportService(t)

	repID := 7
	m.assignmentRepo.EXPECT().
		ListByRepID(repID).
		Return([]*domain.Assignment{}, nil)

	caller := domain.Caller{UserID: 1, RoleID: scoping.RoleSales, SalesRepID: &repID}
	rows, err := service.TerritoryPerformance(caller, nil, nil)

	assert.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestTerritoryDetail_ForaDoEscopo(t *testing.T) {
	service, m := newReportService(t)

	repID := 7
	m.assignmentRepo.EXPECT().
		ListByRepID(repID).
		Return([]*domain.Assignment{{SalesRepID: repID, TerritoryID: 5}}, nil)

	caller := domain.Caller{UserID: 1, RoleID: scoping.RoleSales, SalesRepID: &repID}
	_, err := service.TerritoryDetail(caller, 99, nil)

	assert.ErrorIs(t, err, scoping.ErrTerritoryOutOfScope)
}

func TestTerritoryDetail_TerritorioInexistente(t *testing.T) {
	service, m := newReportService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	m.saleRepo.EXPECT().ListSales(gomock.Any()).Return([]*domain.SaleRecord{}, nil)
	m.territoryRepo.EXPECT().GetByID(99).Return(nil, nil)
	m.assignmentRepo.EXPECT().ListByTerritoryIDs([]int{99}).Return([]*domain.Assignment{}, nil)

	_, err := service.TerritoryDetail(admin, 99, nil)

	assert.ErrorIs(t, err, ErrTerritoryNotFound)
}

func TestTerritoryDetail_MontaVisaoCompleta(t *testing.T) {
	service, m := newReportService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	m.saleRepo.EXPECT().
		ListSales(gomock.Any()).
		Return([]*domain.SaleRecord{
			{TerritoryID: 5, SalesRepID: 10, Revenue: 900, DealCount: intPtr(2), Month: 2, Year: 2024, ProductID: intPtr(1), CustomerID: intPtr(8)},
			{TerritoryID: 5, SalesRepID: 10, Revenue: 100, DealCount: intPtr(1), Month: 1, Year: 2024, ProductID: intPtr(1), CustomerID: intPtr(8)},
		}, nil)

	m.territoryRepo.EXPECT().
		GetByID(5).
		Return(&domain.Territory{ID: 5, Name: "Norte", State: "SP"}, nil)

	m.assignmentRepo.EXPECT().
		ListByTerritoryIDs([]int{5}).
		Return([]*domain.Assignment{{SalesRepID: 10, TerritoryID: 5}}, nil)

	m.productRepo.EXPECT().
		GetByIDs([]int{1}).
		Return([]*domain.Product{{ID: 1, Name: "Plano Essencial"}}, nil)

	m.customerRepo.EXPECT().
		GetByIDs([]int{8}).
		Return([]*domain.Customer{{ID: 8, Name: "Acme"}}, nil)

	detail, err := service.TerritoryDetail(admin, 5, nil)

	assert.NoError(t, err)
	assert.Equal(t, 5, detail.TerritoryID)
	assert.Equal(t, 1000.0, detail.TotalRevenue)
	assert.Equal(t, 3, detail.TotalDeals)
	assert.Equal(t, []int{10}, detail.AssignedReps)

	// Tendência em ordem cronológica
	assert.Len(t, detail.MonthlyTrend, 2)
	assert.Equal(t, 1, detail.MonthlyTrend[0].Month)
	assert.Equal(t, 2, detail.MonthlyTrend[1].Month)

	assert.Len(t, detail.TopProducts, 1)
	assert.Equal(t, "Plano Essencial", detail.TopProducts[0].Name)
	assert.Len(t, detail.TopCustomers, 1)
	assert.Equal(t, "Acme", detail.TopCustomers[0].Name)
}

func TestLiveMap_TodoTerritorioRecebeCor(t *testing.T) {
	service, m := newReportService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	m.saleRepo.EXPECT().
		ListSales(gomock.Any()).
		Return([]*domain.SaleRecord{
			{TerritoryID: 1, SalesRepID: 10, Revenue: 1000},
			{TerritoryID: 2, SalesRepID: 11, Revenue: 500},
		}, nil)

	m.territoryRepo.EXPECT().
		ListTerritories(nil).
		Return([]*domain.Territory{
			{ID: 1, Name: "Norte"},
			{ID: 2, Name: "Sul"},
			{ID: 3, Name: "Leste"},
		}, nil)

	m.assignmentRepo.EXPECT().
		ListByTerritoryIDs(nil).
		Return([]*domain.Assignment{}, nil)

	features, err := service.LiveMap(admin, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, features, 3)

	byID := make(map[int]*domain.MapFeature, len(features))
	for _, feature := range features {
		byID[feature.TerritoryID] = feature
	}

	// Fração fixa do máximo 1000: 1000 HIGH, 500 MEDIUM, 0 LOW
	assert.Equal(t, domain.BucketHigh, byID[1].ColorBucket)
	assert.Equal(t, domain.BucketMedium, byID[2].ColorBucket)
	assert.Equal(t, domain.BucketLow, byID[3].ColorBucket)
}

func TestManagementSummary_RotulosEOrdenacao(t *testing.T) {
	service, m := newReportService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	m.saleRepo.EXPECT().
		ListSales(gomock.Any()).
		Return([]*domain.SaleRecord{
			{TerritoryID: 1, SalesRepID: 10, Revenue: 150000, DealCount: intPtr(5)},
			{TerritoryID: 2, SalesRepID: 11, Revenue: 40000, DealCount: intPtr(20)},
		}, nil)

	m.territoryRepo.EXPECT().
		ListTerritories(nil).
		Return([]*domain.Territory{
			{ID: 1, Name: "Norte"},
			{ID: 2, Name: "Sul"},
		}, nil)

	m.assignmentRepo.EXPECT().
		ListByTerritoryIDs(nil).
		Return([]*domain.Assignment{}, nil)

	summaries, err := service.ManagementSummary(admin, nil)

	assert.NoError(t, err)
	assert.Len(t, summaries, 2)

	// Ordenado por receita decrescente
	assert.Equal(t, 1, summaries[0].TerritoryID)
	assert.NotNil(t, summaries[0].Insight)
	assert.Equal(t, domain.InsightExpansionCandidate, *summaries[0].Insight)

	assert.Equal(t, 2, summaries[1].TerritoryID)
	assert.NotNil(t, summaries[1].Insight)
	assert.Equal(t, domain.InsightPricingOpportunity, *summaries[1].Insight)
}
