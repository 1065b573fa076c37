package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
)

// GetTerritoryPerformance retorna a listagem de desempenho por território,
// ordenada por receita decrescente, respeitando o escopo do usuário
func GetTerritoryPerformance(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		window, err := parseSaleWindow(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros de filtro inválidos", nil)
			return
		}

		repID, err := parseOptionalInt(r.URL.Query().Get("sales_rep_id"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sales_rep_id inválido", nil)
			return
		}

		rows, err := service.TerritoryPerformance(caller, repID, window)
		if err != nil {
			writeReportingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

// GetTerritoryDetail retorna a visão detalhada de um território: agregados,
// tendência mensal, top produtos e top clientes
func GetTerritoryDetail(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		territoryIDStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		territoryID, err := strconv.Atoi(territoryIDStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do território inválido", nil)
			return
		}

		window, err := parseSaleWindow(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros de filtro inválidos", nil)
			return
		}

		detail, err := service.TerritoryDetail(caller, territoryID, window)
		if err != nil {
			writeReportingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detail)
	}
}

// writeReportingError mapeia os erros das visões de relatório para a resposta
// padronizada da API
func writeReportingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoping.ErrForbidden):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Perfil sem acesso a relatórios", nil)

	case errors.Is(err, scoping.ErrTerritoryOutOfScope):
		apiErrors.WriteError(w, apiErrors.ErrScopeViolation, "Território fora do escopo do usuário", nil)

	case errors.Is(err, reporting.ErrTerritoryNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Território não encontrado", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório", nil)
	}
}
