package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-territory-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

const (
	territoriesTable = "territories t"
)

type TerritoryRepository interface {
	GetByID(id int) (*domain.Territory, error)
	ListTerritories(ids []int) ([]*domain.Territory, error)
}

type territoryRepository struct {
	conn *postgres.Connection
}

func NewTerritoryRepository(conn *postgres.Connection) TerritoryRepository {
	return &territoryRepository{
		conn: conn,
	}
}

func (r *territoryRepository) GetByID(id int) (*domain.Territory, error) {
	query, args, err := squirrel.
		Select("t.id, t.name, t.state, t.region, t.latitude, t.longitude").
		From(territoriesTable).
		Where(squirrel.Eq{"t.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	territory, err := scanTerritoryRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear território: %w", err)
	}

	return territory, nil
}

// ListTerritories retorna os territórios pelos IDs informados. Lista vazia de
// IDs retorna todos os territórios cadastrados.
func (r *territoryRepository) ListTerritories(ids []int) ([]*domain.Territory, error) {
	queryBuilder := squirrel.
		Select("t.id, t.name, t.state, t.region, t.latitude, t.longitude").
		From(territoriesTable).
		OrderBy("t.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(ids) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"t.id": ids})
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.Territory{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	territories := make([]*domain.Territory, 0)
	for rows.Next() {
		territory, err := scanTerritory(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear território: %w", err)
		}
		territories = append(territories, territory)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return territories, nil
}

func scanTerritory(rows *sql.Rows) (*domain.Territory, error) {
	territory := &domain.Territory{}

	var region sql.NullString

	err := rows.Scan(
		&territory.ID,
		&territory.Name,
		&territory.State,
		&region,
		&territory.Latitude,
		&territory.Longitude,
	)
	if err != nil {
		return nil, err
	}

	if region.Valid {
		territory.Region = &region.String
	}

	return territory, nil
}

func scanTerritoryRow(row *sql.Row) (*domain.Territory, error) {
	territory := &domain.Territory{}

	var region sql.NullString

	err := row.Scan(
		&territory.ID,
		&territory.Name,
		&territory.State,
		&region,
		&territory.Latitude,
		&territory.Longitude,
	)
	if err != nil {
		return nil, err
	}

	if region.Valid {
		territory.Region = &region.String
	}

	return territory, nil
}
