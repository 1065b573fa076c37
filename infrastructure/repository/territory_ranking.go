package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-territory-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

const (
	territoryRankingTable = "territory_rankings tr"
)

type TerritoryRankingRepository interface {
	GetByTerritoryID(territoryID int, month string) (*domain.TerritoryRankingItem, error)
	GetTerritoryRanking() (*domain.TerritoryRankingResponse, error)
	SaveOrUpdateRanking(rankings []*domain.TerritoryRankingItem) error
}

type territoryRankingRepository struct {
	conn *postgres.Connection
}

func NewTerritoryRankingRepository(conn *postgres.Connection) TerritoryRankingRepository {
	return &territoryRankingRepository{
		conn: conn,
	}
}

// GetTerritoryRanking retorna o snapshot do mês corrente (referência: ontem,
// para cobrir viradas de mês durante a madrugada).
func (r *territoryRankingRepository) GetTerritoryRanking() (*domain.TerritoryRankingResponse, error) {
	yesterday := time.Now().AddDate(0, 0, -1)
	month := yesterday.Format("01-2006")

	queryBuilder := squirrel.
		Select(
			"tr.id",
			"tr.territory_id",
			"tr.month",
			"tr.territory_name",
			"tr.revenue",
			"tr.deals",
			"tr.bucket",
			"tr.position",
			"tr.position_change",
			"tr.previous_position",
			"tr.created_at",
			"tr.updated_at",
		).
		From(territoryRankingTable).
		Where(squirrel.Eq{"tr.month": month}).
		OrderBy("tr.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.TerritoryRankingResponse{
				Ranking:    []domain.TerritoryRankingItem{},
				LastUpdate: time.Now(),
			}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.TerritoryRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := r.scanRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		// Manter o último update mais recente
		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &domain.TerritoryRankingResponse{
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *territoryRankingRepository) GetByTerritoryID(territoryID int, month string) (*domain.TerritoryRankingItem, error) {
	query, args, err := squirrel.
		Select("tr.id, tr.territory_id, tr.month, tr.territory_name, tr.revenue, tr.deals, tr.bucket, tr.position, tr.position_change, tr.previous_position, tr.created_at, tr.updated_at").
		From(territoryRankingTable).
		Where(squirrel.Eq{"tr.territory_id": territoryID, "tr.month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	item := &domain.TerritoryRankingItem{}
	err = row.Scan(
		&item.ID,
		&item.TerritoryID,
		&item.Month,
		&item.TerritoryName,
		&item.Revenue,
		&item.Deals,
		&item.Bucket,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}

	return item, nil
}

func (r *territoryRankingRepository) SaveOrUpdateRanking(rankings []*domain.TerritoryRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("territory_rankings").
		Columns(
			"territory_id",
			"month",
			"territory_name",
			"revenue",
			"deals",
			"bucket",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.TerritoryID,
			ranking.Month,
			ranking.TerritoryName,
			ranking.Revenue,
			ranking.Deals,
			ranking.Bucket,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	// Comportamento de conflito (upsert)
	query = query.Suffix(`
		ON CONFLICT (territory_id, month) DO UPDATE SET
			territory_name = EXCLUDED.territory_name,
			revenue = EXCLUDED.revenue,
			deals = EXCLUDED.deals,
			bucket = EXCLUDED.bucket,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *territoryRankingRepository) scanRankingItem(rows *sql.Rows) (*domain.TerritoryRankingItem, error) {
	item := &domain.TerritoryRankingItem{}

	err := rows.Scan(
		&item.ID,
		&item.TerritoryID,
		&item.Month,
		&item.TerritoryName,
		&item.Revenue,
		&item.Deals,
		&item.Bucket,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
