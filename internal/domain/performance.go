package domain

// Status de desempenho contra a meta. A igualdade exata entre realizado e meta
// resolve para ACHIEVED, nunca para EXCEEDED.
const (
	TargetStatusExceeded = "EXCEEDED"
	TargetStatusAchieved = "ACHIEVED"
	TargetStatusBelow    = "BELOW"
)

// PerformanceRow é uma linha da listagem meta-versus-realizado de um vendedor.
// Vendedores sem meta cadastrada para o período não geram linha.
type PerformanceRow struct {
	SalesRepID            int     `json:"sales_rep_id"`
	SalesRepName          string  `json:"sales_rep_name,omitempty"`
	TargetAmount          float64 `json:"target_amount"`
	AchievedRevenue       float64 `json:"achieved_revenue"`
	PerformancePercentage float64 `json:"performance_percentage"`
	Status                string  `json:"status"`
}

// PerformancePage é uma página da listagem de desempenho.
type PerformancePage struct {
	Rows  []*PerformanceRow `json:"rows"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}
