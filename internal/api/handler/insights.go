package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
)

// GetManagementSummary retorna o resumo gerencial: territórios classificados
// por percentil com rótulos de oportunidade
func GetManagementSummary(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("insights: management summary requested")

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

		summary, err := service.ManagementSummary(caller, window)
		if err != nil {
			writeReportingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}
