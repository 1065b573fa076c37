package reporting

import (
	"sort"

	"github.com/vfg2006/sales-territory-api/internal/domain"
)

// BuildMonthlyTrend materializa a série mensal em ordem cronológica: ano
// ascendente e, dentro do ano, mês ascendente. Meses sem venda não aparecem
// na série (sem preenchimento de lacunas).
func BuildMonthlyTrend(buckets map[BucketKey]*Bucket) []*domain.MonthlyTrendPoint {
	points := make([]*domain.MonthlyTrendPoint, 0, len(buckets))

	for key, bucket := range buckets {
		points = append(points, &domain.MonthlyTrendPoint{
			Year:    key.Year,
			Month:   key.Month,
			Revenue: bucket.Revenue,
			Deals:   bucket.Deals,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})

	return points
}
