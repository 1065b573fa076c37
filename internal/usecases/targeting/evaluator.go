// Package targeting compara a receita realizada dos vendedores com as metas
// mensais cadastradas e mantém o upsert dessas metas.
package targeting

import (
	"github.com/vfg2006/sales-territory-api/internal/domain"
	"github.com/vfg2006/sales-territory-api/pkg/utils"
)

// EvaluateTarget deriva o percentual e o status de desempenho contra a meta.
// Só é chamado com targetAmount > 0 (garantido na validação do upsert).
// A fronteira importa: realizado igual à meta é ACHIEVED, nunca EXCEEDED.
func EvaluateTarget(targetAmount, achievedRevenue float64) (float64, string) {
	percentage := utils.RoundWithOneDecimalPlace(achievedRevenue / targetAmount * 100)

	switch {
	case achievedRevenue > targetAmount:
		return percentage, domain.TargetStatusExceeded
	case achievedRevenue == targetAmount:
		return percentage, domain.TargetStatusAchieved
	default:
		return percentage, domain.TargetStatusBelow
	}
}
