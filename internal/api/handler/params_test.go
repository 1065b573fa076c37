package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/pkg/apiErrors"
	"github.com/vfg2006/sales-territory-api/pkg/middleware"
)

func intPtr(v int) *int { return &v }

func TestParseSaleWindow_FiltrosValidos(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/territories?month=3&year=2024&product_id=7", nil)

	window, err := parseSaleWindow(r)

	require.NoError(t, err)
	assert.Equal(t, intPtr(3), window.Month)
	assert.Equal(t, intPtr(2024), window.Year)
	assert.Equal(t, intPtr(7), window.ProductID)
}

func TestParseSaleWindow_FiltrosForaDaFaixa(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectedErr error
	}{
		{
			name:        "mês acima de 12 é rejeitado",
			query:       "month=13&year=2024",
			expectedErr: ErrFilterInvalidMonth,
		},
		{
			name:        "mês zero é rejeitado",
			query:       "month=0",
			expectedErr: ErrFilterInvalidMonth,
		},
		{
			name:        "ano anterior a 2000 é rejeitado",
			query:       "year=1800",
			expectedErr: ErrFilterInvalidYear,
		},
		{
			name:        "ano posterior a 2100 é rejeitado",
			query:       "year=2200",
			expectedErr: ErrFilterInvalidYear,
		},
		{
			name:        "start_date posterior a end_date é rejeitado",
			query:       "start_date=2024-05-10&end_date=2024-05-01",
			expectedErr: ErrFilterInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/territories?"+tt.query, nil)

			window, err := parseSaleWindow(r)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, window)
		})
	}
}

// O serviço de relatórios nunca deve ser consultado quando o filtro é
// inválido: a resposta é 400, não uma listagem vazia.
func TestGetTerritoryPerformance_FiltroInvalidoRetorna400(t *testing.T) {
	claims := &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}

	r := httptest.NewRequest(http.MethodGet, "/v1/territories?month=13&year=1800", nil)
	r = r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims))
	w := httptest.NewRecorder()

	GetTerritoryPerformance(nil).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apiErrors.ErrInvalidFormat, apiErr.Code)
}
