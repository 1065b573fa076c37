package domain

import "time"

// TerritoryRankingResponse é o snapshot mais recente do ranking de territórios.
type TerritoryRankingResponse struct {
	Ranking    []TerritoryRankingItem `json:"ranking"`
	LastUpdate time.Time              `json:"last_update"`
}

// TerritoryRankingItem é uma posição do ranking mensal de territórios por
// receita, persistido pelo job diário de snapshot.
type TerritoryRankingItem struct {
	ID               int       `json:"id"`
	TerritoryID      int       `json:"territory_id"`
	Month            string    `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	TerritoryName    string    `json:"territory_name"`
	Revenue          float64   `json:"revenue"`
	Deals            int       `json:"deals"`
	Bucket           string    `json:"bucket"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int       `json:"previous_position"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
