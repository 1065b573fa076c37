package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	SalesRepID   *int       `json:"sales_rep_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Claims struct {
	UserID       int
	UserName     string
	UserLastname string
	UserEmail    string
	UserActive   bool
	UserRoleID   int
	SalesRepID   *int
	jwt.RegisteredClaims
}

// Caller identifica quem está consultando os relatórios: papel e, para
// vendedores, o ID do próprio vendedor vinculado ao usuário.
type Caller struct {
	UserID     int
	RoleID     int
	SalesRepID *int
}

// CallerFromClaims monta o Caller a partir das claims do token autenticado.
func CallerFromClaims(claims *Claims) Caller {
	return Caller{
		UserID:     claims.UserID,
		RoleID:     claims.UserRoleID,
		SalesRepID: claims.SalesRepID,
	}
}
