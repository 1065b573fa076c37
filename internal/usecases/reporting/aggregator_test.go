package reporting

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

func TestAggregate_PorTerritorio(t *testing.T) {
	sales := []*domain.SaleRecord{
		{TerritoryID: 1, SalesRepID: 10, Revenue: 100, DealCount: intPtr(2)},
		{TerritoryID: 1, SalesRepID: 11, Revenue: 50, DealCount: intPtr(1)},
		{TerritoryID: 2, SalesRepID: 10, Revenue: 300, DealCount: intPtr(4)},
	}

	buckets := Aggregate(sales, GroupByTerritory)

	assert.Len(t, buckets, 2)
	assert.Equal(t, 150.0, buckets[BucketKey{ID: 1}].Revenue)
	assert.Equal(t, 3, buckets[BucketKey{ID: 1}].Deals)
	assert.Equal(t, 300.0, buckets[BucketKey{ID: 2}].Revenue)
	assert.Equal(t, 4, buckets[BucketKey{ID: 2}].Deals)
}

func TestAggregate_ConservacaoDaReceita(t *testing.T) {
	// A soma dos buckets deve ser igual à soma das vendas de entrada,
	// independente da dimensão de agrupamento e de como as vendas se
	// repartem entre territórios, vendedores e meses. Semente fixa para a
	// rodada ser reprodutível.
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		total := 1 + rng.Intn(200)
		sales := make([]*domain.SaleRecord, 0, total)

		var input float64
		for i := 0; i < total; i++ {
			sale := &domain.SaleRecord{
				TerritoryID: 1 + rng.Intn(8),
				SalesRepID:  10 + rng.Intn(5),
				Revenue:     float64(rng.Intn(10_000_000)) / 100,
				Month:       1 + rng.Intn(12),
				Year:        2023 + rng.Intn(3),
			}
			input += sale.Revenue
			sales = append(sales, sale)
		}

		for _, groupBy := range []GroupKey{GroupByTerritory, GroupByRep, GroupByMonth} {
			var sum float64
			for _, bucket := range Aggregate(sales, groupBy) {
				sum += bucket.Revenue
			}
			assert.InDelta(t, input, sum, 1e-6)
		}
	}
}

func TestAggregate_ChaveMensalNaoColide(t *testing.T) {
	// Janeiro e outubro do mesmo ano precisam de buckets distintos; uma chave
	// textual "2024-1"/"2024-10" seria ambígua por prefixo.
	sales := []*domain.SaleRecord{
		{TerritoryID: 1, SalesRepID: 10, Revenue: 100, Month: 1, Year: 2024},
		{TerritoryID: 1, SalesRepID: 10, Revenue: 200, Month: 10, Year: 2024},
		{TerritoryID: 1, SalesRepID: 10, Revenue: 400, Month: 1, Year: 2025},
	}

	buckets := Aggregate(sales, GroupByMonth)

	assert.Len(t, buckets, 3)
	assert.Equal(t, 100.0, buckets[BucketKey{Year: 2024, Month: 1}].Revenue)
	assert.Equal(t, 200.0, buckets[BucketKey{Year: 2024, Month: 10}].Revenue)
	assert.Equal(t, 400.0, buckets[BucketKey{Year: 2025, Month: 1}].Revenue)
}

func TestAggregate_LinhasMalformadas(t *testing.T) {
	tests := []struct {
		name            string
		sales           []*domain.SaleRecord
		expectedRevenue float64
		expectedDeals   int
	}{
		{
			name: "Receita NaN contribui com zero",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, Revenue: math.NaN(), DealCount: intPtr(3)},
			},
			expectedRevenue: 0,
			expectedDeals:   3,
		},
		{
			name: "Receita infinita contribui com zero",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, Revenue: math.Inf(1)},
			},
			expectedRevenue: 0,
			expectedDeals:   1,
		},
		{
			name: "Receita negativa contribui com zero",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, Revenue: -50},
			},
			expectedRevenue: 0,
			expectedDeals:   1,
		},
		{
			name: "Quantidade de negócios ausente conta como 1",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, Revenue: 80},
				{TerritoryID: 1, Revenue: 20, DealCount: intPtr(0)},
			},
			expectedRevenue: 100,
			expectedDeals:   2,
		},
		{
			name: "Venda nula é ignorada",
			sales: []*domain.SaleRecord{
				nil,
				{TerritoryID: 1, Revenue: 10, DealCount: intPtr(1)},
			},
			expectedRevenue: 10,
			expectedDeals:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := Aggregate(tt.sales, GroupByTerritory)

			bucket := buckets[BucketKey{ID: 1}]
			assert.NotNil(t, bucket)
			assert.Equal(t, tt.expectedRevenue, bucket.Revenue)
			assert.Equal(t, tt.expectedDeals, bucket.Deals)
		})
	}
}

func intPtr(v int) *int {
	return &v
}
