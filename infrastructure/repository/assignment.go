package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-territory-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

const (
	assignmentsTable = "rep_territories rt"
)

// AssignmentRepository resolve os vínculos formais vendedor-território usados
// na derivação de escopo e na listagem de responsáveis por território.
type AssignmentRepository interface {
	ListByRepID(repID int) ([]*domain.Assignment, error)
	ListByTerritoryIDs(territoryIDs []int) ([]*domain.Assignment, error)
}

type assignmentRepository struct {
	conn *postgres.Connection
}

func NewAssignmentRepository(conn *postgres.Connection) AssignmentRepository {
	return &assignmentRepository{
		conn: conn,
	}
}

func (r *assignmentRepository) ListByRepID(repID int) ([]*domain.Assignment, error) {
	queryBuilder := squirrel.
		Select("rt.sales_rep_id", "rt.territory_id").
		From(assignmentsTable).
		Where(squirrel.Eq{"rt.sales_rep_id": repID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.listAssignments(queryBuilder)
}

// ListByTerritoryIDs retorna os vínculos dos territórios informados. Lista
// vazia retorna todos os vínculos.
func (r *assignmentRepository) ListByTerritoryIDs(territoryIDs []int) ([]*domain.Assignment, error) {
	queryBuilder := squirrel.
		Select("rt.sales_rep_id", "rt.territory_id").
		From(assignmentsTable).
		PlaceholderFormat(squirrel.Dollar)

	if len(territoryIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"rt.territory_id": territoryIDs})
	}

	return r.listAssignments(queryBuilder)
}

func (r *assignmentRepository) listAssignments(queryBuilder squirrel.SelectBuilder) ([]*domain.Assignment, error) {
	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.Assignment{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		if err := rows.Scan(&assignment.SalesRepID, &assignment.TerritoryID); err != nil {
			return nil, fmt.Errorf("erro ao escanear vínculo: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return assignments, nil
}
