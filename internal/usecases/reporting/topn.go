package reporting

import (
	"sort"

	"github.com/vfg2006/sales-territory-api/internal/domain"
)

// DefaultTopN é o tamanho padrão dos rankings de produtos e clientes.
const DefaultTopN = 5

// entityTotal acumula a contribuição de receita de uma entidade relacionada
// (produto ou cliente) dentro do conjunto de vendas em escopo.
type entityTotal struct {
	id      int
	revenue float64
	deals   int
}

// aggregateByEntity agrupa vendas por uma entidade opcional. Vendas sem a
// entidade preenchida são ignoradas.
func aggregateByEntity(sales []*domain.SaleRecord, entityID func(*domain.SaleRecord) *int) map[int]*entityTotal {
	totals := make(map[int]*entityTotal)

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		id := entityID(sale)
		if id == nil {
			continue
		}

		total, ok := totals[*id]
		if !ok {
			total = &entityTotal{id: *id}
			totals[*id] = total
		}

		total.revenue += sale.NormalizedRevenue()
		total.deals += sale.NormalizedDealCount()
	}

	return totals
}

// topEntities seleciona as K entidades de maior receita. Entidades com receita
// zero nunca entram no ranking. Empate de receita resolve por ID ascendente,
// garantindo ordem determinística independente da ordem de busca.
func topEntities(totals map[int]*entityTotal, k int) []*entityTotal {
	if k <= 0 {
		k = DefaultTopN
	}

	ranked := make([]*entityTotal, 0, len(totals))
	for _, total := range totals {
		if total.revenue > 0 {
			ranked = append(ranked, total)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	return ranked
}

// topProducts resolve os metadados dos K produtos de maior receita. A lista
// final é reordenada por receita decrescente porque a busca de metadados não
// preserva a ordem do ranking.
func (s *Service) topProducts(sales []*domain.SaleRecord, k int) ([]*domain.TopProduct, error) {
	totals := aggregateByEntity(sales, func(sale *domain.SaleRecord) *int { return sale.ProductID })
	ranked := topEntities(totals, k)

	ids := make([]int, 0, len(ranked))
	for _, total := range ranked {
		ids = append(ids, total.id)
	}

	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	top := make([]*domain.TopProduct, 0, len(ranked))
	for _, total := range ranked {
		entry := &domain.TopProduct{
			ProductID: total.id,
			Revenue:   total.revenue,
			Deals:     total.deals,
		}
		if product, ok := byID[total.id]; ok {
			entry.Name = product.Name
			entry.Category = product.Category
		}
		top = append(top, entry)
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].ProductID < top[j].ProductID
	})

	return top, nil
}

// topCustomers resolve os metadados dos K clientes de maior receita, com a
// mesma reordenação final do ranking de produtos.
func (s *Service) topCustomers(sales []*domain.SaleRecord, k int) ([]*domain.TopCustomer, error) {
	totals := aggregateByEntity(sales, func(sale *domain.SaleRecord) *int { return sale.CustomerID })
	ranked := topEntities(totals, k)

	ids := make([]int, 0, len(ranked))
	for _, total := range ranked {
		ids = append(ids, total.id)
	}

	customers, err := s.customerRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*domain.Customer, len(customers))
	for _, customer := range customers {
		byID[customer.ID] = customer
	}

	top := make([]*domain.TopCustomer, 0, len(ranked))
	for _, total := range ranked {
		entry := &domain.TopCustomer{
			CustomerID: total.id,
			Revenue:    total.revenue,
			Deals:      total.deals,
		}
		if customer, ok := byID[total.id]; ok {
			entry.Name = customer.Name
			entry.Industry = customer.Industry
			entry.Location = customer.Location
		}
		top = append(top, entry)
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].CustomerID < top[j].CustomerID
	})

	return top, nil
}
