package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
)

// GetLiveMap retorna o payload do mapa ao vivo, classificado por fração fixa
// da maior receita do conjunto
func GetLiveMap(service reporting.Reporter) http.HandlerFunc {
	return mapHandler(service.LiveMap)
}

// GetChoroplethMap retorna o payload coroplético, classificado por percentil
func GetChoroplethMap(service reporting.Reporter) http.HandlerFunc {
	return mapHandler(service.ChoroplethMap)
}

func mapHandler(view func(caller domain.Caller, repID *int, window *domain.SaleFilter) ([]*domain.MapFeature, error)) http.HandlerFunc {
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

		features, err := view(caller, repID, window)
		if err != nil {
			writeReportingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(features)
	}
}
