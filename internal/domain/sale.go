// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"math"
	"time"
)

// SaleRecord representa uma venda registrada por um vendedor em um território.
// Os registros são imutáveis depois de buscados: o core apenas lê e agrega.
type SaleRecord struct {
	ID          int64     `json:"id"`
	TerritoryID int       `json:"territory_id"`
	SalesRepID  int       `json:"sales_rep_id"`
	ProductID   *int      `json:"product_id"`
	CustomerID  *int      `json:"customer_id"`
	Revenue     float64   `json:"revenue"`
	DealCount   *int      `json:"deal_count"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	SaleDate    time.Time `json:"sale_date"`
}

// NormalizedRevenue devolve a receita da venda com valores ausentes ou
// inválidos (negativo/NaN) normalizados para zero. A normalização acontece
// uma única vez aqui, e não espalhada em cada somatório.
func (s *SaleRecord) NormalizedRevenue() float64 {
	if math.IsNaN(s.Revenue) || math.IsInf(s.Revenue, 0) || s.Revenue < 0 {
		return 0
	}
	return s.Revenue
}

// NormalizedDealCount devolve a quantidade de negócios da venda, assumindo 1
// quando o campo não foi informado.
func (s *SaleRecord) NormalizedDealCount() int {
	if s.DealCount == nil || *s.DealCount < 1 {
		return 1
	}
	return *s.DealCount
}

// SaleFilter descreve os filtros aceitos pela busca de vendas. Campos nulos
// ou vazios não restringem a consulta.
type SaleFilter struct {
	TerritoryIDs []int
	RepIDs       []int
	ProductID    *int
	StartDate    *time.Time
	EndDate      *time.Time
	Month        *int
	Year         *int
}
