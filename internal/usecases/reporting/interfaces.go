package reporting

import (
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

// Reporter expõe as visões agregadas de desempenho por território. Todas as
// operações resolvem o escopo do usuário antes de qualquer busca e são puras
// em relação ao estado da aplicação: nada sobrevive entre requisições.
type Reporter interface {
	// TerritoryPerformance retorna a listagem de desempenho por território,
	// ordenada por receita total decrescente.
	TerritoryPerformance(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.TerritoryPerformance, error)

	// TerritoryDetail retorna a visão detalhada de um território: agregados,
	// tendência mensal, top produtos e top clientes.
	TerritoryDetail(caller domain.Caller, territoryID int, window *domain.SaleFilter) (*domain.TerritoryDetail, error)

	// LiveMap retorna o payload do mapa ao vivo, com classificação por fração
	// fixa do máximo.
	LiveMap(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.MapFeature, error)

	// ChoroplethMap retorna o payload coroplético, com classificação por
	// percentil.
	ChoroplethMap(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.MapFeature, error)

	// ManagementSummary retorna os territórios classificados por percentil com
	// os rótulos de insight do resumo gerencial.
	ManagementSummary(caller domain.Caller, window *domain.SaleFilter) ([]*domain.TerritorySummary, error)
}
