package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/internal/usecases/scoping"
	"github.com/vfg2006/sales-territory-api/internal/usecases/targeting"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
)

// GetPerformanceListing retorna a página de linhas meta-versus-realizado do
// período informado. month e year são obrigatórios
func GetPerformanceListing(service targeting.TargetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		query := r.URL.Query()

		month, err := parseOptionalInt(query.Get("month"))
		if err != nil || month == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "month é obrigatório", nil)
			return
		}

		year, err := parseOptionalInt(query.Get("year"))
		if err != nil || year == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "year é obrigatório", nil)
			return
		}

		repID, err := parseOptionalInt(query.Get("sales_rep_id"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sales_rep_id inválido", nil)
			return
		}

		page, err := parseOptionalInt(query.Get("page"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page inválido", nil)
			return
		}

		limit, err := parseOptionalInt(query.Get("limit"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit inválido", nil)
			return
		}

		pageNum, limitNum := 1, targeting.DefaultPageSize
		if page != nil {
			pageNum = *page
		}
		if limit != nil {
			limitNum = *limit
		}

		result, err := service.PerformanceListing(caller, *month, *year, repID, pageNum, limitNum)
		if err != nil {
			writeTargetingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// writeTargetingError mapeia os erros de metas para a resposta padronizada
func writeTargetingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, targeting.ErrInvalidMonth),
		errors.Is(err, targeting.ErrInvalidYear),
		errors.Is(err, targeting.ErrInvalidAmount),
		errors.Is(err, targeting.ErrInvalidRep):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, scoping.ErrForbidden):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Perfil sem acesso à listagem de desempenho", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar metas", nil)
	}
}
