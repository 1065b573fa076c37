package domain

import "time"

// SalesTarget é a meta mensal de receita de um vendedor. Existe no máximo um
// registro por (vendedor, mês, ano).
type SalesTarget struct {
	ID           int       `json:"id"`
	SalesRepID   int       `json:"sales_rep_id"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	TargetAmount float64   `json:"target_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetTargetRequest carrega os dados de criação/atualização de uma meta.
type SetTargetRequest struct {
	SalesRepID   int     `json:"sales_rep_id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	TargetAmount float64 `json:"target_amount"`
}

// Resultados possíveis do upsert de meta.
const (
	TargetOutcomeCreated = "created"
	TargetOutcomeUpdated = "updated"
)

// SetTargetResult informa se o upsert criou um registro novo ou atualizou um
// existente.
type SetTargetResult struct {
	Outcome string       `json:"outcome"`
	Target  *SalesTarget `json:"target"`
}
