package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles disponíveis para os usuários do dashboard
const (
	RoleAdmin  = 1
	RoleViewer = 2
)

// User é um usuário do dashboard. Os usuários vêm da configuração; não há
// cadastro nem persistência em banco.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Active       bool   `json:"active"`
	RoleID       int    `json:"role_id"`
}

// Claims é o payload do token JWT emitido no login.
type Claims struct {
	UserName   string
	UserEmail  string
	UserActive bool
	UserRoleID int
	jwt.RegisteredClaims
}
