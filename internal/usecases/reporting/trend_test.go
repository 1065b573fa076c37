package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

func TestBuildMonthlyTrend_OrdemCronologica(t *testing.T) {
	sales := []*domain.SaleRecord{
		{TerritoryID: 1, Revenue: 300, Month: 1, Year: 2025},
		{TerritoryID: 1, Revenue: 100, Month: 11, Year: 2024},
		{TerritoryID: 1, Revenue: 200, Month: 2, Year: 2024},
		{TerritoryID: 1, Revenue: 50, Month: 2, Year: 2024},
	}

	trend := BuildMonthlyTrend(Aggregate(sales, GroupByMonth))

	assert.Len(t, trend, 3)

	assert.Equal(t, 2024, trend[0].Year)
	assert.Equal(t, 2, trend[0].Month)
	assert.Equal(t, 250.0, trend[0].Revenue)

	assert.Equal(t, 2024, trend[1].Year)
	assert.Equal(t, 11, trend[1].Month)

	assert.Equal(t, 2025, trend[2].Year)
	assert.Equal(t, 1, trend[2].Month)
}

func TestBuildMonthlyTrend_SemPreenchimentoDeLacunas(t *testing.T) {
	// Meses sem venda não aparecem na série.
	sales := []*domain.SaleRecord{
		{TerritoryID: 1, Revenue: 100, Month: 1, Year: 2024},
		{TerritoryID: 1, Revenue: 100, Month: 4, Year: 2024},
	}

	trend := BuildMonthlyTrend(Aggregate(sales, GroupByMonth))

	assert.Len(t, trend, 2)
	assert.Equal(t, 1, trend[0].Month)
	assert.Equal(t, 4, trend[1].Month)
}
