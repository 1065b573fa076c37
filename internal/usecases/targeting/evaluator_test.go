package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

func TestEvaluateTarget(t *testing.T) {
	tests := []struct {
		name               string
		targetAmount       float64
		achievedRevenue    float64
		expectedPercentage float64
		expectedStatus     string
	}{
		{
			name:               "Realizado acima da meta é EXCEEDED",
			targetAmount:       100000,
			achievedRevenue:    150000,
			expectedPercentage: 150.0,
			expectedStatus:     domain.TargetStatusExceeded,
		},
		{
			name:               "Realizado exatamente igual à meta é ACHIEVED",
			targetAmount:       100000,
			achievedRevenue:    100000,
			expectedPercentage: 100.0,
			expectedStatus:     domain.TargetStatusAchieved,
		},
		{
			name:               "Realizado abaixo da meta é BELOW",
			targetAmount:       100000,
			achievedRevenue:    99999.99,
			expectedPercentage: 100.0, // arredondado para uma casa decimal
			expectedStatus:     domain.TargetStatusBelow,
		},
		{
			name:               "Sem receita realizada",
			targetAmount:       50000,
			achievedRevenue:    0,
			expectedPercentage: 0.0,
			expectedStatus:     domain.TargetStatusBelow,
		},
		{
			name:               "Percentual com uma casa decimal",
			targetAmount:       30000,
			achievedRevenue:    10000,
			expectedPercentage: 33.3,
			expectedStatus:     domain.TargetStatusBelow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentage, status := EvaluateTarget(tt.targetAmount, tt.achievedRevenue)

			assert.Equal(t, tt.expectedPercentage, percentage)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}
