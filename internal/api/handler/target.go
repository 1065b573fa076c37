package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/internal/usecases/targeting"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
)

// UpsertTarget cria ou atualiza a meta de um vendedor para (mês, ano).
// Retorna 201 quando a meta foi criada e 200 quando foi atualizada
func UpsertTarget(service targeting.TargetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpsertTarget")

		var req domain.SetTargetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.SetTarget(&req)
		if err != nil {
			writeTargetingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if result.Outcome == domain.TargetOutcomeCreated {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(result)
	}
}
