// Package repository contém as implementações dos repositórios para acesso aos dados
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
	salesTable = "sales s"
)

// SaleRepository expõe a busca de vendas brutas. O core apenas consome as
// linhas retornadas; toda a execução de consulta fica aqui.
type SaleRepository interface {
	ListSales(filter *domain.SaleFilter) ([]*domain.SaleRecord, error)
	ListRepTerritoryIDs(repID int, filter *domain.SaleFilter) ([]int, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) ListSales(filter *domain.SaleFilter) ([]*domain.SaleRecord, error) {
	queryBuilder := squirrel.
		Select(
			"s.id",
			"s.territory_id",
			"s.sales_rep_id",
			"s.product_id",
			"s.customer_id",
			"s.revenue",
			"s.deal_count",
			"s.month",
			"s.year",
			"s.sale_date",
		).
		From(salesTable).
		PlaceholderFormat(squirrel.Dollar)

	queryBuilder = applySaleFilter(queryBuilder, filter)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.SaleRecord{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.SaleRecord, 0)
	for rows.Next() {
		sale, err := r.scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

// ListRepTerritoryIDs retorna os territórios distintos onde o vendedor possui
// ao menos uma venda dentro da janela do filtro.
func (r *saleRepository) ListRepTerritoryIDs(repID int, filter *domain.SaleFilter) ([]int, error) {
	queryBuilder := squirrel.
		Select("DISTINCT s.territory_id").
		From(salesTable).
		Where(squirrel.Eq{"s.sales_rep_id": repID}).
		PlaceholderFormat(squirrel.Dollar)

	queryBuilder = applySaleWindow(queryBuilder, filter)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []int{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear território: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}

// applySaleFilter aplica todas as condições do filtro sobre o builder.
func applySaleFilter(builder squirrel.SelectBuilder, filter *domain.SaleFilter) squirrel.SelectBuilder {
	if filter == nil {
		return builder
	}

	if len(filter.TerritoryIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"s.territory_id": filter.TerritoryIDs})
	}
	if len(filter.RepIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"s.sales_rep_id": filter.RepIDs})
	}
	if filter.ProductID != nil {
		builder = builder.Where(squirrel.Eq{"s.product_id": *filter.ProductID})
	}

	return applySaleWindow(builder, filter)
}

// applySaleWindow aplica apenas as condições temporais (datas e mês/ano).
func applySaleWindow(builder squirrel.SelectBuilder, filter *domain.SaleFilter) squirrel.SelectBuilder {
	if filter == nil {
		return builder
	}

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"s.sale_date": filter.StartDate.Format(time.DateOnly)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"s.sale_date": filter.EndDate.Format(time.DateOnly)})
	}
	if filter.Month != nil {
		builder = builder.Where(squirrel.Eq{"s.month": *filter.Month})
	}
	if filter.Year != nil {
		builder = builder.Where(squirrel.Eq{"s.year": *filter.Year})
	}

	return builder
}

func (r *saleRepository) scanSale(rows *sql.Rows) (*domain.SaleRecord, error) {
	sale := &domain.SaleRecord{}

	var productID, customerID, dealCount sql.NullInt64

	err := rows.Scan(
		&sale.ID,
		&sale.TerritoryID,
		&sale.SalesRepID,
		&productID,
		&customerID,
		&sale.Revenue,
		&dealCount,
		&sale.Month,
		&sale.Year,
		&sale.SaleDate,
	)
	if err != nil {
		return nil, err
	}

	if productID.Valid {
		id := int(productID.Int64)
		sale.ProductID = &id
	}
	if customerID.Valid {
		id := int(customerID.Int64)
		sale.CustomerID = &id
	}
	if dealCount.Valid {
		count := int(dealCount.Int64)
		sale.DealCount = &count
	}

	return sale, nil
}
