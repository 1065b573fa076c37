// Package scoping deriva o conjunto de territórios e vendedores visíveis para
// cada usuário a partir do papel dele, substituindo checagens de papel
// espalhadas pelos pontos de agregação.
package scoping

import (
	"sort"

	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/internal/domain"
)

// Papéis reconhecidos. Qualquer outro valor resolve para ErrForbidden.
const (
	RoleAdmin      = 1
	RoleManagement = 2
	RoleSales      = 3
)

// Scope é o resultado da resolução: ou acesso irrestrito, ou um conjunto
// fechado de territórios, opcionalmente restrito a um vendedor.
type Scope struct {
	AllTerritories bool
	TerritoryIDs   []int
	RepID          *int
}

// IsEmpty indica que nenhum território é visível. Agregações devem
// curto-circuitar e devolver payload vazio sem consultar vendas.
func (s Scope) IsEmpty() bool {
	return !s.AllTerritories && len(s.TerritoryIDs) == 0
}

// Contains verifica se um território está dentro do escopo.
func (s Scope) Contains(territoryID int) bool {
	if s.AllTerritories {
		return true
	}
	for _, id := range s.TerritoryIDs {
		if id == territoryID {
			return true
		}
	}
	return false
}

// Resolver computa o escopo de visibilidade de um usuário.
type Resolver interface {
	// ResolveScope resolve o escopo do usuário. requestedRepID é o filtro
	// explícito por vendedor (ignorado para o papel de vendas); window limita
	// a derivação por vendas à janela consultada.
	ResolveScope(caller domain.Caller, requestedRepID *int, window *domain.SaleFilter) (Scope, error)
}

type Service struct {
	saleRepo       repository.SaleRepository
	assignmentRepo repository.AssignmentRepository
	variants       map[int]roleVariant
}

// roleVariant é o contrato uniforme implementado por cada papel do conjunto
// fechado {admin, gerência, vendas}.
type roleVariant interface {
	resolve(s *Service, caller domain.Caller, requestedRepID *int, window *domain.SaleFilter) (Scope, error)
}

func NewResolver(
	saleRepo repository.SaleRepository,
	assignmentRepo repository.AssignmentRepository,
) Resolver {
	return &Service{
		saleRepo:       saleRepo,
		assignmentRepo: assignmentRepo,
		variants: map[int]roleVariant{
			RoleAdmin:      adminVariant{},
			RoleManagement: managementVariant{},
			RoleSales:      salesVariant{},
		},
	}
}

func (s *Service) ResolveScope(caller domain.Caller, requestedRepID *int, window *domain.SaleFilter) (Scope, error) {
	variant, ok := s.variants[caller.RoleID]
	if !ok {
		return Scope{}, ErrForbidden
	}

	return variant.resolve(s, caller, requestedRepID, window)
}

type adminVariant struct{}

func (adminVariant) resolve(s *Service, _ domain.Caller, requestedRepID *int, window *domain.SaleFilter) (Scope, error) {
	// Sem alvo de inspeção, o administrador enxerga tudo. Com filtro
	// explícito por vendedor, o escopo estreita como na gerência.
	if requestedRepID == nil {
		return Scope{AllTerritories: true}, nil
	}
	return s.repScope(*requestedRepID, window)
}

type managementVariant struct{}

func (managementVariant) resolve(s *Service, _ domain.Caller, requestedRepID *int, window *domain.SaleFilter) (Scope, error) {
	if requestedRepID == nil {
		return Scope{AllTerritories: true}, nil
	}
	return s.repScope(*requestedRepID, window)
}

type salesVariant struct{}

func (salesVariant) resolve(s *Service, caller domain.Caller, _ *int, _ *domain.SaleFilter) (Scope, error) {
	// Autosserviço: qualquer identidade enviada nos filtros é ignorada e o
	// escopo é sempre forçado aos territórios formalmente vinculados ao
	// próprio vendedor.
	if caller.SalesRepID == nil {
		return Scope{}, nil
	}

	assignments, err := s.assignmentRepo.ListByRepID(*caller.SalesRepID)
	if err != nil {
		return Scope{}, err
	}

	ids := make([]int, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.TerritoryID)
	}
	sort.Ints(ids)

	repID := *caller.SalesRepID
	return Scope{TerritoryIDs: ids, RepID: &repID}, nil
}

// repScope deriva o conjunto de territórios de um vendedor como a UNIÃO dos
// territórios onde ele tem vendas na janela corrente com os territórios onde
// ele tem vínculo formal. Nunca a interseção, nunca uma só das fontes.
func (s *Service) repScope(repID int, window *domain.SaleFilter) (Scope, error) {
	soldIDs, err := s.saleRepo.ListRepTerritoryIDs(repID, window)
	if err != nil {
		return Scope{}, err
	}

	assignments, err := s.assignmentRepo.ListByRepID(repID)
	if err != nil {
		return Scope{}, err
	}

	seen := make(map[int]struct{}, len(soldIDs)+len(assignments))
	for _, id := range soldIDs {
		seen[id] = struct{}{}
	}
	for _, assignment := range assignments {
		seen[assignment.TerritoryID] = struct{}{}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return Scope{TerritoryIDs: ids, RepID: &repID}, nil
}
