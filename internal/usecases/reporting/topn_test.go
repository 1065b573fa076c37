package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestTopEntities(t *testing.T) {
	tests := []struct {
		name     string
		totals   map[int]*entityTotal
		k        int
		expected []int
	}{
		{
			name: "Ordena por receita decrescente e corta em K",
			totals: map[int]*entityTotal{
				1: {id: 1, revenue: 100},
				2: {id: 2, revenue: 300},
				3: {id: 3, revenue: 200},
			},
			k:        2,
			expected: []int{2, 3},
		},
		{
			name: "Empate de receita resolve por ID ascendente",
			totals: map[int]*entityTotal{
				9: {id: 9, revenue: 100},
				3: {id: 3, revenue: 100},
				5: {id: 5, revenue: 100},
			},
			k:        3,
			expected: []int{3, 5, 9},
		},
		{
			name: "Receita zero nunca entra no ranking",
			totals: map[int]*entityTotal{
				1: {id: 1, revenue: 0},
				2: {id: 2, revenue: 50},
			},
			k:        5,
			expected: []int{2},
		},
		{
			name: "K não positivo usa o padrão",
			totals: map[int]*entityTotal{
				1: {id: 1, revenue: 10},
				2: {id: 2, revenue: 20},
				3: {id: 3, revenue: 30},
				4: {id: 4, revenue: 40},
				5: {id: 5, revenue: 50},
				6: {id: 6, revenue: 60},
			},
			k:        0,
			expected: []int{6, 5, 4, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := topEntities(tt.totals, tt.k)

			ids := make([]int, 0, len(ranked))
			for _, total := range ranked {
				ids = append(ids, total.id)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestTopProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProductRepo := mocks.NewMockProductRepository(ctrl)

	service := &Service{productRepo: mockProductRepo}

	sales := []*domain.SaleRecord{
		{TerritoryID: 1, Revenue: 500, ProductID: intPtr(7)},
		{TerritoryID: 1, Revenue: 300, ProductID: intPtr(4)},
		{TerritoryID: 1, Revenue: 200, ProductID: intPtr(7)},
		{TerritoryID: 1, Revenue: 100, ProductID: nil}, // sem produto: ignorada
	}

	mockProductRepo.EXPECT().
		GetByIDs([]int{7, 4}).
		Return([]*domain.Product{
			{ID: 4, Name: "Plano Essencial", Category: "Assinatura"},
			{ID: 7, Name: "Plano Corporativo", Category: "Assinatura"},
		}, nil)

	top, err := service.topProducts(sales, 5)

	assert.NoError(t, err)
	assert.Len(t, top, 2)

	assert.Equal(t, 7, top[0].ProductID)
	assert.Equal(t, "Plano Corporativo", top[0].Name)
	assert.Equal(t, 700.0, top[0].Revenue)

	assert.Equal(t, 4, top[1].ProductID)
	assert.Equal(t, 300.0, top[1].Revenue)
}

func TestTopCustomers_MetadadosAusentes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCustomerRepo := mocks.NewMockCustomerRepository(ctrl)

	service := &Service{customerRepo: mockCustomerRepo}

	sales := []*domain.SaleRecord{
		{TerritoryID: 1, Revenue: 250, CustomerID: intPtr(12)},
	}

	// Cliente sem cadastro: a linha do ranking sai com os campos de exibição
	// vazios, mas a receita permanece.
	mockCustomerRepo.EXPECT().
		GetByIDs([]int{12}).
		Return([]*domain.Customer{}, nil)

	top, err := service.topCustomers(sales, 5)

	assert.NoError(t, err)
	assert.Len(t, top, 1)
	assert.Equal(t, 12, top[0].CustomerID)
	assert.Empty(t, top[0].Name)
	assert.Equal(t, 250.0, top[0].Revenue)
}
