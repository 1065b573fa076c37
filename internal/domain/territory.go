package domain

// Territory representa uma região geográfica de vendas, unidade primária dos
// relatórios de desempenho. Entidade de referência estática.
type Territory struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Region    *string `json:"region"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Assignment é o vínculo formal entre um vendedor e um território, independente
// de haver vendas registradas. Relação muitos-para-muitos.
type Assignment struct {
	SalesRepID  int `json:"sales_rep_id"`
	TerritoryID int `json:"territory_id"`
}
