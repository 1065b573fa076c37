package reporting

import (
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

// GroupKey enumera as dimensões de agrupamento aceitas pelo agregador.
type GroupKey int

const (
	GroupByTerritory GroupKey = iota
	GroupByRep
	GroupByMonth
)

// BucketKey identifica um grupo agregado. Para agrupamento mensal a chave é o
// par (ano, mês) como inteiros, nunca uma string formatada: chaves como
// "2024-1" e "2024-10" seriam ambíguas por prefixo.
type BucketKey struct {
	ID    int
	Year  int
	Month int
}

// Bucket é o acumulador de um grupo: soma de receita e de negócios. Existe
// apenas durante a requisição; nunca é persistido.
type Bucket struct {
	Key     BucketKey
	Revenue float64
	Deals   int
}

// Aggregate dobra as vendas em totais por chave. Receita ausente ou inválida
// contribui com zero e quantidade de negócios ausente conta como 1 por venda;
// uma linha malformada degrada para contribuição zero, nunca derruba a
// agregação inteira. A ordem de entrada não afeta o resultado.
func Aggregate(sales []*domain.SaleRecord, groupBy GroupKey) map[BucketKey]*Bucket {
	buckets := make(map[BucketKey]*Bucket)

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		key := bucketKey(sale, groupBy)

		bucket, ok := buckets[key]
		if !ok {
			bucket = &Bucket{Key: key}
			buckets[key] = bucket
		}

		bucket.Revenue += sale.NormalizedRevenue()
		bucket.Deals += sale.NormalizedDealCount()
	}

	return buckets
}

func bucketKey(sale *domain.SaleRecord, groupBy GroupKey) BucketKey {
	switch groupBy {
	case GroupByRep:
		return BucketKey{ID: sale.SalesRepID}
	case GroupByMonth:
		return BucketKey{Year: sale.Year, Month: sale.Month}
	default:
		return BucketKey{ID: sale.TerritoryID}
	}
}
