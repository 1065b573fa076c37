package reporting

import (
	"math"
	"sort"

	"github.com/vfg2006/sales-territory-api/internal/domain"
)

// As duas estratégias de classificação NÃO são intercambiáveis: a de fração
// fixa é sensível a um único território fora da curva (um outlier rebaixa
// todos os outros), a de percentil é estável por posto. Cada endpoint depende
// dessa diferença, então as duas permanecem separadas e nomeadas.

// ClassifyFixedFraction classifica pela fração do máximo em escopo: HIGH a
// partir de 66% do máximo, MEDIUM a partir de 33%, LOW abaixo. O máximo tem
// piso 1 para evitar divisão por zero.
func ClassifyFixedFraction(buckets map[BucketKey]*Bucket) map[BucketKey]string {
	max := 1.0
	for _, bucket := range buckets {
		if bucket.Revenue > max {
			max = bucket.Revenue
		}
	}

	highThreshold := max * 0.66
	midThreshold := max * 0.33

	labels := make(map[BucketKey]string, len(buckets))
	for key, bucket := range buckets {
		labels[key] = label(bucket.Revenue, highThreshold, midThreshold)
	}

	return labels
}

// ClassifyPercentile classifica por posto: HIGH a partir do percentil 70 das
// receitas em escopo, MEDIUM a partir do percentil 30, LOW abaixo. Índices
// fora da faixa (ou escopo vazio) usam limiar 0.
func ClassifyPercentile(buckets map[BucketKey]*Bucket) map[BucketKey]string {
	sorted := make([]float64, 0, len(buckets))
	for _, bucket := range buckets {
		sorted = append(sorted, bucket.Revenue)
	}
	sort.Float64s(sorted)

	p70 := percentileAt(sorted, 0.70)
	p30 := percentileAt(sorted, 0.30)

	labels := make(map[BucketKey]string, len(buckets))
	for key, bucket := range buckets {
		labels[key] = label(bucket.Revenue, p70, p30)
	}

	return labels
}

func percentileAt(sorted []float64, fraction float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * fraction))
	if idx < 0 || idx >= len(sorted) {
		return 0
	}
	return sorted[idx]
}

func label(revenue, highThreshold, midThreshold float64) string {
	switch {
	case revenue >= highThreshold:
		return domain.BucketHigh
	case revenue >= midThreshold:
		return domain.BucketMedium
	default:
		return domain.BucketLow
	}
}

// InsightTag aplica a marcação qualitativa do resumo gerencial. A checagem de
// oportunidade de precificação vem antes da de expansão; território sem
// condição satisfeita não recebe rótulo.
func InsightTag(revenue float64, deals int) *string {
	if deals > 10 && revenue < 50000 {
		tag := domain.InsightPricingOpportunity
		return &tag
	}
	if revenue > 100000 {
		tag := domain.InsightExpansionCandidate
		return &tag
	}
	return nil
}
