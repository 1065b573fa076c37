package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-territory-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

const (
	targetsTable = "sales_targets st"
)

// TargetRepository persiste as metas mensais de vendedores. A unicidade de
// (sales_rep_id, month, year) é garantida por constraint no banco; o serviço
// faz check-then-create sem garantia própria de atomicidade.
type TargetRepository interface {
	GetByRepMonthYear(repID, month, year int) (*domain.SalesTarget, error)
	Create(target *domain.SalesTarget) (*domain.SalesTarget, error)
	UpdateAmount(id int, amount float64) error
	ListByPeriod(month, year int, repIDs []int) ([]*domain.SalesTarget, error)
}

type targetRepository struct {
	conn *postgres.Connection
}

func NewTargetRepository(conn *postgres.Connection) TargetRepository {
	return &targetRepository{
		conn: conn,
	}
}

func (r *targetRepository) GetByRepMonthYear(repID, month, year int) (*domain.SalesTarget, error) {
	query, args, err := squirrel.
		Select("st.id, st.sales_rep_id, st.month, st.year, st.target_amount, st.created_at, st.updated_at").
		From(targetsTable).
		Where(squirrel.Eq{"st.sales_rep_id": repID, "st.month": month, "st.year": year}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	target := &domain.SalesTarget{}
	err = row.Scan(
		&target.ID,
		&target.SalesRepID,
		&target.Month,
		&target.Year,
		&target.TargetAmount,
		&target.CreatedAt,
		&target.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear meta: %w", err)
	}

	return target, nil
}

func (r *targetRepository) Create(target *domain.SalesTarget) (*domain.SalesTarget, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("sales_targets").
		Columns("sales_rep_id", "month", "year", "target_amount").
		Values(target.SalesRepID, target.Month, target.Year, target.TargetAmount).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&target.ID, &target.CreatedAt, &target.UpdatedAt); err != nil {
		return nil, fmt.Errorf("erro ao inserir meta: %w", err)
	}

	return target, nil
}

func (r *targetRepository) UpdateAmount(id int, amount float64) error {
	query, args, err := squirrel.StatementBuilder.
		Update("sales_targets").
		Set("target_amount", amount).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar meta: %w", err)
	}

	return nil
}

// ListByPeriod retorna as metas do período. Lista de vendedores vazia não
// restringe a busca.
func (r *targetRepository) ListByPeriod(month, year int, repIDs []int) ([]*domain.SalesTarget, error) {
	queryBuilder := squirrel.
		Select("st.id, st.sales_rep_id, st.month, st.year, st.target_amount, st.created_at, st.updated_at").
		From(targetsTable).
		Where(squirrel.Eq{"st.month": month, "st.year": year}).
		OrderBy("st.sales_rep_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(repIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"st.sales_rep_id": repIDs})
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.SalesTarget{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	targets := make([]*domain.SalesTarget, 0)
	for rows.Next() {
		target := &domain.SalesTarget{}
		err := rows.Scan(
			&target.ID,
			&target.SalesRepID,
			&target.Month,
			&target.Year,
			&target.TargetAmount,
			&target.CreatedAt,
			&target.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear meta: %w", err)
		}
		targets = append(targets, target)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return targets, nil
}
