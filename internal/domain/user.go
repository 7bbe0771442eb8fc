package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserIntegration guarda as credenciais de origem (Meta) e destino (Google) de um usuário
type UserIntegration struct {
	UserID                int       `json:"user_id"`
	MetaAccessToken       string    `json:"-"`
	GoogleCredentialsJSON string    `json:"-"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type Claims struct {
	UserID       int
	UserName     string
	UserEmail    string
	UserRoleID   int
	UserTimezone string
	jwt.RegisteredClaims
}
