package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

func bucketsFor(revenues map[int]float64) map[BucketKey]*Bucket {
	buckets := make(map[BucketKey]*Bucket, len(revenues))
	for id, revenue := range revenues {
		key := BucketKey{ID: id}
		buckets[key] = &Bucket{Key: key, Revenue: revenue}
	}
	return buckets
}

func TestClassifyFixedFraction(t *testing.T) {
	tests := []struct {
		name     string
		revenues map[int]float64
		expected map[int]string
	}{
		{
			name:     "Frações do máximo separam as três faixas",
			revenues: map[int]float64{1: 10, 2: 50, 3: 100},
			expected: map[int]string{
				1: domain.BucketLow,    // 10 < 33
				2: domain.BucketMedium, // 50 >= 33
				3: domain.BucketHigh,   // 100 >= 66
			},
		},
		{
			name:     "Fronteiras exatas são inclusivas",
			revenues: map[int]float64{1: 33, 2: 66, 3: 100},
			expected: map[int]string{
				1: domain.BucketMedium,
				2: domain.BucketHigh,
				3: domain.BucketHigh,
			},
		},
		{
			name:     "Conjunto todo zerado cai em LOW pelo piso do máximo",
			revenues: map[int]float64{1: 0, 2: 0},
			expected: map[int]string{
				1: domain.BucketLow,
				2: domain.BucketLow,
			},
		},
		{
			name:     "Um outlier rebaixa o resto do conjunto",
			revenues: map[int]float64{1: 1000, 2: 100, 3: 90},
			expected: map[int]string{
				1: domain.BucketHigh,
				2: domain.BucketLow,
				3: domain.BucketLow,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := ClassifyFixedFraction(bucketsFor(tt.revenues))

			for id, expected := range tt.expected {
				assert.Equal(t, expected, labels[BucketKey{ID: id}], "território %d", id)
			}
		})
	}
}

func TestClassifyPercentile(t *testing.T) {
	// Dez territórios com receitas 0..90: p70 = sorted[7] = 70 e
	// p30 = sorted[3] = 30.
	revenues := make(map[int]float64, 10)
	for i := 0; i < 10; i++ {
		revenues[i+1] = float64(i * 10)
	}

	labels := ClassifyPercentile(bucketsFor(revenues))

	expected := map[int]string{
		1:  domain.BucketLow,    // 0
		2:  domain.BucketLow,    // 10
		3:  domain.BucketLow,    // 20
		4:  domain.BucketMedium, // 30
		5:  domain.BucketMedium, // 40
		6:  domain.BucketMedium, // 50
		7:  domain.BucketMedium, // 60
		8:  domain.BucketHigh,   // 70
		9:  domain.BucketHigh,   // 80
		10: domain.BucketHigh,   // 90
	}

	for id, label := range expected {
		assert.Equal(t, label, labels[BucketKey{ID: id}], "território %d", id)
	}
}

func TestClassifyPercentile_ConjuntoVazio(t *testing.T) {
	labels := ClassifyPercentile(map[BucketKey]*Bucket{})
	assert.Empty(t, labels)
}

func TestInsightTag(t *testing.T) {
	tests := []struct {
		name     string
		revenue  float64
		deals    int
		expected *string
	}{
		{
			name:     "Muitos negócios com receita baixa marca oportunidade de precificação",
			revenue:  40000,
			deals:    11,
			expected: stringPtr(domain.InsightPricingOpportunity),
		},
		{
			name:     "Receita alta marca candidato a expansão",
			revenue:  150000,
			deals:    5,
			expected: stringPtr(domain.InsightExpansionCandidate),
		},
		{
			name:    "Precificação tem precedência sobre expansão",
			revenue: 40000,
			deals:   200,
			// revenue < 50000 com deals > 10: mesmo que outro critério fosse
			// atingível, o primeiro rótulo vence
			expected: stringPtr(domain.InsightPricingOpportunity),
		},
		{
			name:     "Fronteiras exatas não disparam rótulo",
			revenue:  100000,
			deals:    10,
			expected: nil,
		},
		{
			name:     "Sem condição satisfeita não há rótulo",
			revenue:  60000,
			deals:    5,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := InsightTag(tt.revenue, tt.deals)

			if tt.expected == nil {
				assert.Nil(t, tag)
			} else {
				assert.NotNil(t, tag)
				assert.Equal(t, *tt.expected, *tag)
			}
		})
	}
}

func stringPtr(v string) *string {
	return &v
}
