package targeting

import "errors"

// Erros de validação do upsert e da listagem. Nenhuma escrita parcial
// acontece quando a validação falha.
var (
	ErrInvalidMonth  = errors.New("mês inválido: deve estar entre 1 e 12")
	ErrInvalidYear   = errors.New("ano inválido: deve estar entre 2000 e 2100")
	ErrInvalidAmount = errors.New("valor de meta inválido: deve ser maior que zero")
	ErrInvalidRep    = errors.New("vendedor inválido")
)
