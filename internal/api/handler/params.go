package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/pkg/middleware"
	"github.com/vfg2006/sales-territory-api/pkg/utils"
)

// Erros de validação dos filtros de janela temporal. Filtros fora da faixa
// são rejeitados antes de qualquer consulta: nunca viram uma listagem vazia
// silenciosa.
var (
	ErrFilterInvalidMonth = errors.New("mês inválido: deve estar entre 1 e 12")
	ErrFilterInvalidYear  = errors.New("ano inválido: deve estar entre 2000 e 2100")
	ErrFilterInvalidRange = errors.New("intervalo inválido: start_date posterior a end_date")
)

// callerFromRequest extrai o Caller das claims injetadas pelo middleware de
// autenticação.
func callerFromRequest(r *http.Request) (domain.Caller, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return domain.Caller{}, false
	}
	return domain.CallerFromClaims(claims), true
}

// parseSaleWindow monta o filtro de janela temporal e de produto a partir da
// query string: start_date/end_date (YYYY-MM-DD), month, year e product_id.
func parseSaleWindow(r *http.Request) (*domain.SaleFilter, error) {
	query := r.URL.Query()
	window := &domain.SaleFilter{}

	if startDate := query.Get("start_date"); startDate != "" {
		parsed, err := utils.ParseDate(startDate)
		if err != nil {
			return nil, err
		}
		window.StartDate = parsed
	}

	if endDate := query.Get("end_date"); endDate != "" {
		parsed, err := utils.ParseDate(endDate)
		if err != nil {
			return nil, err
		}
		window.EndDate = parsed
	}

	if window.StartDate != nil && window.EndDate != nil && window.StartDate.After(*window.EndDate) {
		return nil, ErrFilterInvalidRange
	}

	month, err := parseOptionalInt(query.Get("month"))
	if err != nil {
		return nil, err
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, ErrFilterInvalidMonth
	}
	window.Month = month

	year, err := parseOptionalInt(query.Get("year"))
	if err != nil {
		return nil, err
	}
	if year != nil && (*year < 2000 || *year > 2100) {
		return nil, ErrFilterInvalidYear
	}
	window.Year = year

	productID, err := parseOptionalInt(query.Get("product_id"))
	if err != nil {
		return nil, err
	}
	window.ProductID = productID

	return window, nil
}

// parseOptionalInt converte um parâmetro opcional; vazio retorna nil.
func parseOptionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}

	return &value, nil
}
