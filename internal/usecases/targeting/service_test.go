package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
	"go.uber.org/mock/gomock"
)

func TestSetTarget_Validacao(t *testing.T) {
	service := NewService(nil, nil, nil)

	tests := []struct {
		name     string
		req      *domain.SetTargetRequest
		expected error
	}{
		{
			name:     "Vendedor inválido",
			req:      &domain.SetTargetRequest{SalesRepID: 0, Month: 1, Year: 2024, TargetAmount: 1000},
			expected: ErrInvalidRep,
		},
		{
			name:     "Mês abaixo do intervalo",
			req:      &domain.SetTargetRequest{SalesRepID: 1, Month: 0, Year: 2024, TargetAmount: 1000},
			expected: ErrInvalidMonth,
		},
		{
			name:     "Mês acima do intervalo",
			req:      &domain.SetTargetRequest{SalesRepID: 1, Month: 13, Year: 2024, TargetAmount: 1000},
			expected: ErrInvalidMonth,
		},
		{
			name:     "Ano fora do intervalo",
			req:      &domain.SetTargetRequest{SalesRepID: 1, Month: 1, Year: 1999, TargetAmount: 1000},
			expected: ErrInvalidYear,
		},
		{
			name:     "Valor de meta não positivo",
			req:      &domain.SetTargetRequest{SalesRepID: 1, Month: 1, Year: 2024, TargetAmount: 0},
			expected: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Nenhuma escrita parcial: a validação falha antes de tocar o
			// repositório (os mocks nulos entrariam em pânico se tocados).
			result, err := service.SetTarget(tt.req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestSetTarget_CriaQuandoNaoExiste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTargetRepo := mocks.NewMockTargetRepository(ctrl)
	service := NewService(nil, mockTargetRepo, nil)

	req := &domain.SetTargetRequest{SalesRepID: 7, Month: 3, Year: 2024, TargetAmount: 50000}

	mockTargetRepo.EXPECT().
		GetByRepMonthYear(7, 3, 2024).
		Return(nil, nil)

	mockTargetRepo.EXPECT().
		Create(gomock.Any()).
		Return(&domain.SalesTarget{ID: 1, SalesRepID: 7, Month: 3, Year: 2024, TargetAmount: 50000}, nil)

	result, err := service.SetTarget(req)

	assert.NoError(t, err)
	assert.Equal(t, domain.TargetOutcomeCreated, result.Outcome)
	assert.Equal(t, 50000.0, result.Target.TargetAmount)
}

func TestSetTarget_AtualizaQuandoJaExiste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTargetRepo := mocks.NewMockTargetRepository(ctrl)
	service := NewService(nil, mockTargetRepo, nil)

	req := &domain.SetTargetRequest{SalesRepID: 7, Month: 3, Year: 2024, TargetAmount: 80000}

	mockTargetRepo.EXPECT().
		GetByRepMonthYear(7, 3, 2024).
		Return(&domain.SalesTarget{ID: 1, SalesRepID: 7, Month: 3, Year: 2024, TargetAmount: 50000}, nil)

	mockTargetRepo.EXPECT().
		UpdateAmount(1, 80000.0).
		Return(nil)

	result, err := service.SetTarget(req)

	assert.NoError(t, err)
	assert.Equal(t, domain.TargetOutcomeUpdated, result.Outcome)
	assert.Equal(t, 80000.0, result.Target.TargetAmount)
}

func newListingService(t *testing.T) (TargetService, *mocks.MockSaleRepository, *mocks.MockAssignmentRepository, *mocks.MockTargetRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSaleRepo := mocks.NewMockSaleRepository(ctrl)
	mockAssignmentRepo := mocks.NewMockAssignmentRepository(ctrl)
	mockTargetRepo := mocks.NewMockTargetRepository(ctrl)

	resolver := scoping.NewResolver(mockSaleRepo, mockAssignmentRepo)
	service := NewService(resolver, mockTargetRepo, mockSaleRepo)

	return service, mockSaleRepo, mockAssignmentRepo, mockTargetRepo
}

func TestPerformanceListing_OmiteVendedorSemMeta(t *testing.T) {
	service, mockSaleRepo, _, mockTargetRepo := newListingService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	// Só o vendedor 10 tem meta; o 11 tem vendas mas nenhuma meta e não
	// gera linha.
	mockTargetRepo.EXPECT().
		ListByPeriod(3, 2024, nil).
		Return([]*domain.SalesTarget{
			{ID: 1, SalesRepID: 10, Month: 3, Year: 2024, TargetAmount: 1000},
		}, nil)

	mockSaleRepo.EXPECT().
		ListSales(gomock.Any()).
		Return([]*domain.SaleRecord{
			{TerritoryID: 1, SalesRepID: 10, Revenue: 1500, DealCount: intPtr(1)},
			{TerritoryID: 1, SalesRepID: 11, Revenue: 900, DealCount: intPtr(1)},
		}, nil)

	page, err := service.PerformanceListing(admin, 3, 2024, nil, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Rows, 1)
	assert.Equal(t, 10, page.Rows[0].SalesRepID)
	assert.Equal(t, 1500.0, page.Rows[0].AchievedRevenue)
	assert.Equal(t, domain.TargetStatusExceeded, page.Rows[0].Status)
	assert.Equal(t, 150.0, page.Rows[0].PerformancePercentage)
}

func TestPerformanceListing_MetaSemVendaFicaZerada(t *testing.T) {
	service, mockSaleRepo, _, mockTargetRepo := newListingService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	mockTargetRepo.EXPECT().
		ListByPeriod(3, 2024, nil).
		Return([]*domain.SalesTarget{
			{ID: 1, SalesRepID: 10, Month: 3, Year: 2024, TargetAmount: 1000},
		}, nil)

	mockSaleRepo.EXPECT().
		ListSales(gomock.Any()).
		Return([]*domain.SaleRecord{}, nil)

	page, err := service.PerformanceListing(admin, 3, 2024, nil, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, page.Rows, 1)
	assert.Equal(t, 0.0, page.Rows[0].AchievedRevenue)
	assert.Equal(t, domain.TargetStatusBelow, page.Rows[0].Status)
}

func TestPerformanceListing_EscopoVazioNaoConsultaVendas(t *testing.T) {
	service, _, mockAssignmentRepo, _ := newListingService(t)

	repID := 7
	mockAssignmentRepo.EXPECT().
		ListByRepID(repID).
		Return([]*domain.Assignment{}, nil)

	// Escopo vazio: nem metas nem vendas são buscadas.
	caller := domain.Caller{UserID: 1, RoleID: scoping.RoleSales, SalesRepID: &repID}
	page, err := service.PerformanceListing(caller, 3, 2024, nil, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 0, page.Pages)
}

func TestPerformanceListing_Paginacao(t *testing.T) {
	service, mockSaleRepo, _, mockTargetRepo := newListingService(t)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	targets := make([]*domain.SalesTarget, 0, 5)
	for i := 1; i <= 5; i++ {
		targets = append(targets, &domain.SalesTarget{ID: i, SalesRepID: i, Month: 3, Year: 2024, TargetAmount: 1000})
	}

	mockTargetRepo.EXPECT().ListByPeriod(3, 2024, nil).Return(targets, nil)
	mockSaleRepo.EXPECT().ListSales(gomock.Any()).Return([]*domain.SaleRecord{}, nil)

	page, err := service.PerformanceListing(admin, 3, 2024, nil, 2, 2)

	assert.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 3, page.Rows[0].SalesRepID)
	assert.Equal(t, 4, page.Rows[1].SalesRepID)
}

func TestPerformanceListing_PeriodoInvalido(t *testing.T) {
	service := NewService(nil, nil, nil)

	admin := domain.Caller{UserID: 1, RoleID: scoping.RoleAdmin}

	_, err := service.PerformanceListing(admin, 13, 2024, nil, 1, 20)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = service.PerformanceListing(admin, 3, 2200, nil, 1, 20)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func intPtr(v int) *int {
	return &v
}
