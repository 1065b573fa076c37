package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
)

// GetTerritoryRanking retorna o ranking mensal de territórios por receita
func GetTerritoryRanking(repo repository.TerritoryRankingRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Buscar o ranking dos territórios
		ranking, err := repo.GetTerritoryRanking()
		if err != nil {
			logrus.Error("Erro ao buscar ranking dos territórios:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking dos territórios", nil)
			return
		}

		if ranking == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Nenhum ranking encontrado", nil)
			return
		}

		// Enviar resposta
		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(ranking)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do ranking:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
