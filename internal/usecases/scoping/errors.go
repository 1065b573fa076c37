package scoping

import "errors"

var (
	// ErrForbidden indica que o papel do usuário não tem escopo válido para a
	// consulta. Nunca é rebaixado para resultado vazio.
	ErrForbidden = errors.New("papel sem permissão para o escopo solicitado")

	// ErrTerritoryOutOfScope indica tentativa de acesso a um território fora
	// do escopo resolvido para o usuário.
	ErrTerritoryOutOfScope = errors.New("território fora do escopo do usuário")
)
