package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestTerritoryRankingSyncService_processTerritoryRanking(t *testing.T) {
	month := "01-2024"

	territories := []*domain.Territory{
		{ID: 1, Name: "Norte"},
		{ID: 2, Name: "Sul"},
		{ID: 3, Name: "Leste"},
	}

	tests := []struct {
		name     string
		sales    []*domain.SaleRecord
		topN     int
		setup    func(rankingRepo *mocks.MockTerritoryRankingRepository)
		validate func(t *testing.T, result []*domain.TerritoryRankingItem)
	}{
		{
			name: "Sem snapshot anterior - posições novas sem variação",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, SalesRepID: 10, Revenue: 1000, Month: 1, Year: 2024},
				{TerritoryID: 2, SalesRepID: 11, Revenue: 3000, Month: 1, Year: 2024},
			},
			setup: func(rankingRepo *mocks.MockTerritoryRankingRepository) {
				rankingRepo.EXPECT().GetByTerritoryID(gomock.Any(), month).Return(nil, nil).Times(3)
			},
			validate: func(t *testing.T, result []*domain.TerritoryRankingItem) {
				assert.Len(t, result, 3)

				// Ordenado por receita decrescente; território sem venda
				// entra zerado no fim
				assert.Equal(t, 2, result[0].TerritoryID)
				assert.Equal(t, "Sul", result[0].TerritoryName)
				assert.Equal(t, 3000.0, result[0].Revenue)
				assert.Equal(t, 1, result[0].Position)
				assert.Equal(t, 0, result[0].PositionChange)
				assert.Equal(t, 0, result[0].PreviousPosition)

				assert.Equal(t, 1, result[1].TerritoryID)
				assert.Equal(t, 2, result[1].Position)

				assert.Equal(t, 3, result[2].TerritoryID)
				assert.Equal(t, 0.0, result[2].Revenue)
				assert.Equal(t, 3, result[2].Position)
			},
		},
		{
			name: "Com snapshot anterior - variação de posição calculada",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, SalesRepID: 10, Revenue: 5000, Month: 1, Year: 2024},
				{TerritoryID: 2, SalesRepID: 11, Revenue: 3000, Month: 1, Year: 2024},
			},
			setup: func(rankingRepo *mocks.MockTerritoryRankingRepository) {
				// O território 1 estava em terceiro e subiu para primeiro
				rankingRepo.EXPECT().
					GetByTerritoryID(1, month).
					Return(&domain.TerritoryRankingItem{TerritoryID: 1, Month: month, Position: 3}, nil)

				rankingRepo.EXPECT().
					GetByTerritoryID(2, month).
					Return(&domain.TerritoryRankingItem{TerritoryID: 2, Month: month, Position: 1}, nil)

				rankingRepo.EXPECT().
					GetByTerritoryID(3, month).
					Return(nil, nil)
			},
			validate: func(t *testing.T, result []*domain.TerritoryRankingItem) {
				assert.Equal(t, 1, result[0].TerritoryID)
				assert.Equal(t, 1, result[0].Position)
				assert.Equal(t, 3, result[0].PreviousPosition)
				assert.Equal(t, 2, result[0].PositionChange) // subiu duas posições

				assert.Equal(t, 2, result[1].TerritoryID)
				assert.Equal(t, 2, result[1].Position)
				assert.Equal(t, -1, result[1].PositionChange) // desceu uma posição
			},
		},
		{
			name: "Empate de receita resolve por ID de território",
			sales: []*domain.SaleRecord{
				{TerritoryID: 2, SalesRepID: 10, Revenue: 1000, Month: 1, Year: 2024},
				{TerritoryID: 1, SalesRepID: 11, Revenue: 1000, Month: 1, Year: 2024},
			},
			setup: func(rankingRepo *mocks.MockTerritoryRankingRepository) {
				rankingRepo.EXPECT().GetByTerritoryID(gomock.Any(), month).Return(nil, nil).Times(3)
			},
			validate: func(t *testing.T, result []*domain.TerritoryRankingItem) {
				assert.Equal(t, 1, result[0].TerritoryID)
				assert.Equal(t, 2, result[1].TerritoryID)
			},
		},
		{
			name: "TopN limita o snapshot",
			sales: []*domain.SaleRecord{
				{TerritoryID: 1, SalesRepID: 10, Revenue: 1000, Month: 1, Year: 2024},
				{TerritoryID: 2, SalesRepID: 11, Revenue: 3000, Month: 1, Year: 2024},
				{TerritoryID: 3, SalesRepID: 12, Revenue: 2000, Month: 1, Year: 2024},
			},
			topN: 2,
			setup: func(rankingRepo *mocks.MockTerritoryRankingRepository) {
				rankingRepo.EXPECT().GetByTerritoryID(gomock.Any(), month).Return(nil, nil).Times(2)
			},
			validate: func(t *testing.T, result []*domain.TerritoryRankingItem) {
				assert.Len(t, result, 2)
				assert.Equal(t, 2, result[0].TerritoryID)
				assert.Equal(t, 3, result[1].TerritoryID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRankingRepo := mocks.NewMockTerritoryRankingRepository(ctrl)
			tt.setup(mockRankingRepo)

			service := &TerritoryRankingSyncService{
				rankingRepo: mockRankingRepo,
				config:      TerritoryRankingSyncConfig{TopN: tt.topN},
			}

			result, err := service.processTerritoryRanking(tt.sales, territories, month)

			assert.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestTerritoryRankingSyncService_GetStatus(t *testing.T) {
	service := &TerritoryRankingSyncService{
		config: TerritoryRankingSyncConfig{
			CronSchedule: "0 5 * * *",
			SyncEnabled:  true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 5 * * *", status["cron_schedule"])
	assert.Equal(t, false, status["running"])
}
