package domain

// Rótulos de classificação qualitativa de territórios.
const (
	BucketHigh   = "HIGH"
	BucketMedium = "MEDIUM"
	BucketLow    = "LOW"
)

// Rótulos de insight para o resumo gerencial. A checagem de oportunidade de
// precificação tem prioridade sobre a de expansão.
const (
	InsightPricingOpportunity = "PRICING_OPPORTUNITY"
	InsightExpansionCandidate = "EXPANSION_CANDIDATE"
)

// TerritoryPerformance é uma linha da listagem de desempenho por território,
// ordenada por receita total decrescente.
type TerritoryPerformance struct {
	TerritoryID   int     `json:"territory_id"`
	TerritoryName string  `json:"territory_name"`
	State         string  `json:"state"`
	Region        *string `json:"region"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalDeals    int     `json:"total_deals"`
	AvgDealSize   int     `json:"avg_deal_size"`
	AssignedReps  []int   `json:"assigned_sales_reps"`
}

// MonthlyTrendPoint é um ponto da série mensal de receita. A série só contém
// meses com ao menos uma venda.
type MonthlyTrendPoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Deals   int     `json:"deals"`
}

// TopProduct é um produto ranqueado por contribuição de receita.
type TopProduct struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	Deals     int     `json:"deals"`
}

// TopCustomer é um cliente ranqueado por contribuição de receita.
type TopCustomer struct {
	CustomerID int     `json:"customer_id"`
	Name       string  `json:"name"`
	Industry   string  `json:"industry"`
	Location   string  `json:"location"`
	Revenue    float64 `json:"revenue"`
	Deals      int     `json:"deals"`
}

// TerritoryDetail é a visão detalhada de um território: desempenho agregado
// mais tendência mensal, top produtos e top clientes.
type TerritoryDetail struct {
	TerritoryPerformance
	MonthlyTrend []*MonthlyTrendPoint `json:"monthly_trend"`
	TopProducts  []*TopProduct        `json:"top_products"`
	TopCustomers []*TopCustomer       `json:"top_customers"`
}

// MapFeature é uma entrada do payload de mapa (ao vivo ou coroplético).
type MapFeature struct {
	TerritoryID int     `json:"id"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Region      *string `json:"region"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Revenue     float64 `json:"revenue"`
	Deals       int     `json:"deals"`
	ColorBucket string  `json:"color_bucket"`
}

// TerritorySummary é uma linha do resumo gerencial: território classificado
// com eventual rótulo de insight.
type TerritorySummary struct {
	TerritoryID   int     `json:"territory_id"`
	TerritoryName string  `json:"territory_name"`
	Revenue       float64 `json:"revenue"`
	Deals         int     `json:"deals"`
	Bucket        string  `json:"bucket"`
	Insight       *string `json:"insight"`
}

// Product é a entidade de catálogo resolvida para exibição nos rankings.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Customer é o cliente resolvido para exibição nos rankings.
type Customer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
}
